// Package repotest provides an in-memory repository.Store for tests.
//
// A transaction reads and writes a private copy of the data taken when it
// starts. Its writes are recorded and replayed onto the live data at commit,
// so writes made outside the transaction survive and a failing transaction
// leaves nothing behind. Transactions may overlap; an ownership row created
// by a transaction that committed first fails the later commit the way a
// primary key would.
package repotest

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/repository"
	"github.com/shopspring/decimal"
)

type ownershipKey struct {
	userID int64
	gameID int64
}

// mutation is one recorded write, replayed onto the live data at commit.
type mutation func(d *data) error

type data struct {
	seq          *atomic.Int64
	games        map[int64]repository.Game
	bundles      map[int64]repository.Bundle
	bundleGames  map[int64][]int64
	carts        map[int64]repository.Cart
	cartItems    []repository.CartItem
	cartBundles  []repository.CartBundle
	orders       []repository.Order
	orderItems   []repository.OrderItem
	orderBundles []repository.OrderBundle
	purchased    map[ownershipKey]repository.PurchasedGame
	wishlist     map[ownershipKey]struct{}
}

func newData() *data {
	return &data{
		seq:         new(atomic.Int64),
		games:       map[int64]repository.Game{},
		bundles:     map[int64]repository.Bundle{},
		bundleGames: map[int64][]int64{},
		carts:       map[int64]repository.Cart{},
		purchased:   map[ownershipKey]repository.PurchasedGame{},
		wishlist:    map[ownershipKey]struct{}{},
	}
}

func (d *data) clone() *data {
	c := &data{
		seq:          d.seq,
		games:        make(map[int64]repository.Game, len(d.games)),
		bundles:      make(map[int64]repository.Bundle, len(d.bundles)),
		bundleGames:  make(map[int64][]int64, len(d.bundleGames)),
		carts:        make(map[int64]repository.Cart, len(d.carts)),
		cartItems:    slices.Clone(d.cartItems),
		cartBundles:  slices.Clone(d.cartBundles),
		orders:       slices.Clone(d.orders),
		orderItems:   slices.Clone(d.orderItems),
		orderBundles: slices.Clone(d.orderBundles),
		purchased:    make(map[ownershipKey]repository.PurchasedGame, len(d.purchased)),
		wishlist:     make(map[ownershipKey]struct{}, len(d.wishlist)),
	}
	for k, v := range d.games {
		c.games[k] = v
	}
	for k, v := range d.bundles {
		c.bundles[k] = v
	}
	for k, v := range d.bundleGames {
		c.bundleGames[k] = slices.Clone(v)
	}
	for k, v := range d.carts {
		c.carts[k] = v
	}
	for k, v := range d.purchased {
		c.purchased[k] = v
	}
	for k := range d.wishlist {
		c.wishlist[k] = struct{}{}
	}
	return c
}

// id draws from a sequence shared by the live data and every copy of it.
func (d *data) id() int64 {
	return d.seq.Add(1)
}

type faults struct {
	mu           sync.Mutex
	errs         map[string]error
	calls        map[string]int
	beforeCommit func()
}

func (f *faults) hit(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.errs[op]
}

// Store is an in-memory repository.Store.
type Store struct {
	*querier
	faults *faults
	now    func() time.Time
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	f := &faults{errs: map[string]error{}, calls: map[string]int{}}
	s := &Store{faults: f, now: time.Now}
	s.querier = &querier{d: newData(), faults: f, now: s.clock}
	return s
}

func (s *Store) clock() time.Time {
	return s.now()
}

// SetNow fixes the clock used for generated timestamps.
func (s *Store) SetNow(t time.Time) {
	s.now = func() time.Time { return t }
}

// FailOn makes every later call to the named Querier method (or "Commit")
// return err. A nil err clears the fault.
func (s *Store) FailOn(op string, err error) {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	if err == nil {
		delete(s.faults.errs, op)
		return
	}
	s.faults.errs[op] = err
}

// BeforeCommit installs fn to run after a transaction function succeeds
// and before its writes are applied. Tests use it to hold overlapping
// transactions at the commit point.
func (s *Store) BeforeCommit(fn func()) {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	s.faults.beforeCommit = fn
}

// Calls returns how many times the named method was called.
func (s *Store) Calls(op string) int {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	return s.faults.calls[op]
}

func (s *Store) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	s.mu.Lock()
	tx := &querier{d: s.d.clone(), faults: s.faults, now: s.clock, inTx: true}
	s.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.faults.mu.Lock()
	hook := s.faults.beforeCommit
	s.faults.mu.Unlock()
	if hook != nil {
		hook()
	}

	if err := s.faults.hit("Commit"); err != nil {
		return err
	}

	tx.mu.Lock()
	pending := tx.pending
	tx.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.d.clone()
	for _, m := range pending {
		if err := m(next); err != nil {
			return err
		}
	}
	s.d = next
	return nil
}

// Seeding and inspection helpers.

func (s *Store) AddGame(title string, price string, discount *string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := repository.Game{
		ID:        s.d.id(),
		Title:     title,
		Price:     decimal.RequireFromString(price),
		CreatedAt: s.timestamp(),
	}
	if discount != nil {
		g.DiscountPercentage = decimal.NewNullDecimal(decimal.RequireFromString(*discount))
	}
	s.d.games[g.ID] = g
	return g.ID
}

func (s *Store) DeleteGame(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.d.games, id)
}

func (s *Store) Game(id int64) repository.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.games[id]
}

type BundleSeed struct {
	Name               string
	Price              string
	DiscountPercentage *string
	DiscountPrice      *string
	StartsAt           *time.Time
	EndsAt             *time.Time
	GameIDs            []int64
}

func (s *Store) AddBundle(seed BundleSeed) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	price := seed.Price
	if price == "" {
		price = "0"
	}
	b := repository.Bundle{
		ID:        s.d.id(),
		Name:      seed.Name,
		Price:     decimal.RequireFromString(price),
		CreatedAt: s.timestamp(),
	}
	if seed.DiscountPercentage != nil {
		b.DiscountPercentage = decimal.NewNullDecimal(decimal.RequireFromString(*seed.DiscountPercentage))
	}
	if seed.DiscountPrice != nil {
		b.DiscountPrice = decimal.NewNullDecimal(decimal.RequireFromString(*seed.DiscountPrice))
	}
	if seed.StartsAt != nil {
		b.StartsAt = pgtype.Timestamptz{Time: *seed.StartsAt, Valid: true}
	}
	if seed.EndsAt != nil {
		b.EndsAt = pgtype.Timestamptz{Time: *seed.EndsAt, Valid: true}
	}
	s.d.bundles[b.ID] = b
	s.d.bundleGames[b.ID] = slices.Clone(seed.GameIDs)
	return b.ID
}

func (s *Store) DeleteBundle(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.d.bundles, id)
	delete(s.d.bundleGames, id)
}

func (s *Store) AddToWishlist(userID, gameID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.wishlist[ownershipKey{userID, gameID}] = struct{}{}
}

func (s *Store) WishlistGameIDs(userID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for k := range s.d.wishlist {
		if k.userID == userID {
			ids = append(ids, k.gameID)
		}
	}
	slices.Sort(ids)
	return ids
}

func (s *Store) Grant(userID, gameID int64, pricePaid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.purchased[ownershipKey{userID, gameID}] = repository.PurchasedGame{
		UserID:       userID,
		GameID:       gameID,
		PurchaseDate: s.timestamp(),
		PricePaid:    decimal.RequireFromString(pricePaid),
	}
}

func (s *Store) Ownership(userID int64) map[int64]decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[int64]decimal.Decimal{}
	for k, p := range s.d.purchased {
		if k.userID == userID {
			out[k.gameID] = p.PricePaid
		}
	}
	return out
}

func (s *Store) Orders() []repository.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.d.orders)
}

func (s *Store) OrderItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.d.orderItems)
}

func (s *Store) OrderBundleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.d.orderBundles)
}

// CartSize returns the number of items and bundles in the user's cart.
func (s *Store) CartSize(userID int64) (items, bundles int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.d.carts[userID]
	if !ok {
		return 0, 0
	}
	for _, i := range s.d.cartItems {
		if i.CartID == c.ID {
			items++
		}
	}
	for _, b := range s.d.cartBundles {
		if b.CartID == c.ID {
			bundles++
		}
	}
	return items, bundles
}

func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.d.carts)
}

func (s *Store) timestamp() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: s.now(), Valid: true}
}

// querier implements repository.Querier over one data set.
type querier struct {
	mu      sync.Mutex
	d       *data
	faults  *faults
	now     func() time.Time
	inTx    bool
	pending []mutation
}

var _ repository.Querier = (*querier)(nil)

func (q *querier) begin(op string) (func(), error) {
	if err := q.faults.hit(op); err != nil {
		return func() {}, err
	}
	q.mu.Lock()
	return q.mu.Unlock, nil
}

// apply runs m against the querier's data. Inside a transaction m is also
// kept for replay at commit. The caller holds q.mu.
func (q *querier) apply(m mutation) error {
	if err := m(q.d); err != nil {
		return err
	}
	if q.inTx {
		q.pending = append(q.pending, m)
	}
	return nil
}

func deleteCartItems(ids []int64) mutation {
	return func(d *data) error {
		d.cartItems = slices.DeleteFunc(d.cartItems, func(i repository.CartItem) bool {
			return slices.Contains(ids, i.ID)
		})
		return nil
	}
}

func deleteCartBundles(ids []int64) mutation {
	return func(d *data) error {
		d.cartBundles = slices.DeleteFunc(d.cartBundles, func(b repository.CartBundle) bool {
			return slices.Contains(ids, b.ID)
		})
		return nil
	}
}

func (q *querier) timestamp() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: q.now(), Valid: true}
}

func (q *querier) GetGame(_ context.Context, id int64) (repository.Game, error) {
	done, err := q.begin("GetGame")
	defer done()
	if err != nil {
		return repository.Game{}, err
	}
	g, ok := q.d.games[id]
	if !ok {
		return repository.Game{}, pgx.ErrNoRows
	}
	return g, nil
}

func (q *querier) GetBundle(_ context.Context, id int64) (repository.Bundle, error) {
	done, err := q.begin("GetBundle")
	defer done()
	if err != nil {
		return repository.Bundle{}, err
	}
	b, ok := q.d.bundles[id]
	if !ok {
		return repository.Bundle{}, pgx.ErrNoRows
	}
	return b, nil
}

func (q *querier) ListBundleGames(_ context.Context, bundleID int64) ([]repository.Game, error) {
	done, err := q.begin("ListBundleGames")
	defer done()
	if err != nil {
		return nil, err
	}
	var out []repository.Game
	for _, id := range q.d.bundleGames[bundleID] {
		if g, ok := q.d.games[id]; ok {
			out = append(out, g)
		}
	}
	slices.SortFunc(out, func(a, b repository.Game) int { return int(a.ID - b.ID) })
	return out, nil
}

func (q *querier) IncrementGameSales(_ context.Context, gameIDs []int64) error {
	done, err := q.begin("IncrementGameSales")
	defer done()
	if err != nil {
		return err
	}
	ids := slices.Clone(gameIDs)
	return q.apply(func(d *data) error {
		for _, id := range ids {
			if g, ok := d.games[id]; ok {
				g.SalesCount++
				d.games[id] = g
			}
		}
		return nil
	})
}

func (q *querier) EnsureCart(_ context.Context, userID int64) (repository.Cart, error) {
	done, err := q.begin("EnsureCart")
	defer done()
	if err != nil {
		return repository.Cart{}, err
	}
	if c, ok := q.d.carts[userID]; ok {
		return c, nil
	}
	c := repository.Cart{ID: q.d.id(), UserID: userID, CreatedAt: q.timestamp()}
	err = q.apply(func(d *data) error {
		if _, ok := d.carts[userID]; !ok {
			d.carts[userID] = c
		}
		return nil
	})
	return c, err
}

func (q *querier) GetCartByUserID(_ context.Context, userID int64) (repository.Cart, error) {
	done, err := q.begin("GetCartByUserID")
	defer done()
	if err != nil {
		return repository.Cart{}, err
	}
	c, ok := q.d.carts[userID]
	if !ok {
		return repository.Cart{}, pgx.ErrNoRows
	}
	return c, nil
}

func (q *querier) ListCartItems(_ context.Context, cartID int64) ([]repository.CartItem, error) {
	done, err := q.begin("ListCartItems")
	defer done()
	if err != nil {
		return nil, err
	}
	var out []repository.CartItem
	for _, i := range q.d.cartItems {
		if i.CartID == cartID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (q *querier) ListCartBundles(_ context.Context, cartID int64) ([]repository.CartBundle, error) {
	done, err := q.begin("ListCartBundles")
	defer done()
	if err != nil {
		return nil, err
	}
	var out []repository.CartBundle
	for _, b := range q.d.cartBundles {
		if b.CartID == cartID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (q *querier) CreateCartItem(_ context.Context, arg repository.CreateCartItemParams) (repository.CartItem, error) {
	done, err := q.begin("CreateCartItem")
	defer done()
	if err != nil {
		return repository.CartItem{}, err
	}
	item := repository.CartItem{
		ID:       q.d.id(),
		CartID:   arg.CartID,
		GameID:   arg.GameID,
		Quantity: arg.Quantity,
		AddedAt:  q.timestamp(),
	}
	err = q.apply(func(d *data) error {
		for _, i := range d.cartItems {
			if i.CartID == item.CartID && i.GameID == item.GameID {
				return domain.ErrAlreadyInCart
			}
		}
		d.cartItems = append(d.cartItems, item)
		return nil
	})
	if err != nil {
		return repository.CartItem{}, err
	}
	return item, nil
}

func (q *querier) DeleteCartItem(_ context.Context, arg repository.DeleteCartItemParams) (int64, error) {
	done, err := q.begin("DeleteCartItem")
	defer done()
	if err != nil {
		return 0, err
	}
	var ids []int64
	for _, i := range q.d.cartItems {
		if i.CartID == arg.CartID && i.GameID == arg.GameID {
			ids = append(ids, i.ID)
		}
	}
	if err := q.apply(deleteCartItems(ids)); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (q *querier) CreateCartBundle(_ context.Context, arg repository.CreateCartBundleParams) (repository.CartBundle, error) {
	done, err := q.begin("CreateCartBundle")
	defer done()
	if err != nil {
		return repository.CartBundle{}, err
	}
	line := repository.CartBundle{
		ID:       q.d.id(),
		CartID:   arg.CartID,
		BundleID: arg.BundleID,
		Quantity: arg.Quantity,
		Price:    arg.Price,
		AddedAt:  q.timestamp(),
	}
	err = q.apply(func(d *data) error {
		for _, b := range d.cartBundles {
			if b.CartID == line.CartID && b.BundleID == line.BundleID {
				return domain.ErrAlreadyInCart
			}
		}
		d.cartBundles = append(d.cartBundles, line)
		return nil
	})
	if err != nil {
		return repository.CartBundle{}, err
	}
	return line, nil
}

func (q *querier) DeleteCartBundle(_ context.Context, arg repository.DeleteCartBundleParams) (int64, error) {
	done, err := q.begin("DeleteCartBundle")
	defer done()
	if err != nil {
		return 0, err
	}
	var ids []int64
	for _, b := range q.d.cartBundles {
		if b.CartID == arg.CartID && b.BundleID == arg.BundleID {
			ids = append(ids, b.ID)
		}
	}
	if err := q.apply(deleteCartBundles(ids)); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (q *querier) ClearCart(_ context.Context, cartID int64) error {
	done, err := q.begin("ClearCart")
	defer done()
	if err != nil {
		return err
	}
	// Only the rows visible now are removed, as a statement would.
	var itemIDs, bundleIDs []int64
	for _, i := range q.d.cartItems {
		if i.CartID == cartID {
			itemIDs = append(itemIDs, i.ID)
		}
	}
	for _, b := range q.d.cartBundles {
		if b.CartID == cartID {
			bundleIDs = append(bundleIDs, b.ID)
		}
	}
	if err := q.apply(deleteCartItems(itemIDs)); err != nil {
		return err
	}
	return q.apply(deleteCartBundles(bundleIDs))
}

func (q *querier) IsGameOwned(_ context.Context, arg repository.IsGameOwnedParams) (bool, error) {
	done, err := q.begin("IsGameOwned")
	defer done()
	if err != nil {
		return false, err
	}
	_, ok := q.d.purchased[ownershipKey{arg.UserID, arg.GameID}]
	return ok, nil
}

func (q *querier) ListOwnedGameIDs(_ context.Context, arg repository.ListOwnedGameIDsParams) ([]int64, error) {
	done, err := q.begin("ListOwnedGameIDs")
	defer done()
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, id := range arg.GameIDs {
		if _, ok := q.d.purchased[ownershipKey{arg.UserID, id}]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (q *querier) CreatePurchasedGame(_ context.Context, arg repository.CreatePurchasedGameParams) error {
	done, err := q.begin("CreatePurchasedGame")
	defer done()
	if err != nil {
		return err
	}
	key := ownershipKey{arg.UserID, arg.GameID}
	row := repository.PurchasedGame{
		UserID:       arg.UserID,
		GameID:       arg.GameID,
		PurchaseDate: pgtype.Timestamptz{Time: arg.PurchaseDate, Valid: true},
		PricePaid:    arg.PricePaid,
	}
	return q.apply(func(d *data) error {
		if _, ok := d.purchased[key]; ok {
			return domain.ErrDuplicateOwnership
		}
		d.purchased[key] = row
		return nil
	})
}

func (q *querier) ListPurchasedGames(_ context.Context, userID int64) ([]repository.PurchasedGame, error) {
	done, err := q.begin("ListPurchasedGames")
	defer done()
	if err != nil {
		return nil, err
	}
	var out []repository.PurchasedGame
	for k, p := range q.d.purchased {
		if k.userID == userID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b repository.PurchasedGame) int { return int(a.GameID - b.GameID) })
	return out, nil
}

func (q *querier) CreateOrder(_ context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	done, err := q.begin("CreateOrder")
	defer done()
	if err != nil {
		return repository.Order{}, err
	}
	o := repository.Order{
		ID:          arg.ID,
		UserID:      arg.UserID,
		OrderDate:   pgtype.Timestamptz{Time: arg.OrderDate, Valid: true},
		TotalAmount: arg.TotalAmount,
		Status:      arg.Status,
	}
	err = q.apply(func(d *data) error {
		d.orders = append(d.orders, o)
		return nil
	})
	if err != nil {
		return repository.Order{}, err
	}
	return o, nil
}

func (q *querier) CreateOrderItem(_ context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	done, err := q.begin("CreateOrderItem")
	defer done()
	if err != nil {
		return repository.OrderItem{}, err
	}
	i := repository.OrderItem{
		ID:       q.d.id(),
		OrderID:  arg.OrderID,
		GameID:   arg.GameID,
		Price:    arg.Price,
		Quantity: arg.Quantity,
	}
	err = q.apply(func(d *data) error {
		d.orderItems = append(d.orderItems, i)
		return nil
	})
	if err != nil {
		return repository.OrderItem{}, err
	}
	return i, nil
}

func (q *querier) CreateOrderBundle(_ context.Context, arg repository.CreateOrderBundleParams) (repository.OrderBundle, error) {
	done, err := q.begin("CreateOrderBundle")
	defer done()
	if err != nil {
		return repository.OrderBundle{}, err
	}
	b := repository.OrderBundle{
		ID:       q.d.id(),
		OrderID:  arg.OrderID,
		BundleID: arg.BundleID,
		Price:    arg.Price,
		Quantity: arg.Quantity,
	}
	err = q.apply(func(d *data) error {
		d.orderBundles = append(d.orderBundles, b)
		return nil
	})
	if err != nil {
		return repository.OrderBundle{}, err
	}
	return b, nil
}

func (q *querier) GetOrder(_ context.Context, arg repository.GetOrderParams) (repository.Order, error) {
	done, err := q.begin("GetOrder")
	defer done()
	if err != nil {
		return repository.Order{}, err
	}
	for _, o := range q.d.orders {
		if o.ID == arg.ID && o.UserID == arg.UserID {
			return o, nil
		}
	}
	return repository.Order{}, pgx.ErrNoRows
}

func (q *querier) ListOrdersByUser(_ context.Context, arg repository.ListOrdersByUserParams) ([]repository.Order, error) {
	done, err := q.begin("ListOrdersByUser")
	defer done()
	if err != nil {
		return nil, err
	}
	var out []repository.Order
	for i := len(q.d.orders) - 1; i >= 0; i-- {
		if q.d.orders[i].UserID == arg.UserID {
			out = append(out, q.d.orders[i])
		}
	}
	start := min(int(arg.Offset), len(out))
	end := min(start+int(arg.Limit), len(out))
	return out[start:end], nil
}

func (q *querier) ListOrderItems(_ context.Context, orderID uuid.UUID) ([]repository.OrderItem, error) {
	done, err := q.begin("ListOrderItems")
	defer done()
	if err != nil {
		return nil, err
	}
	var out []repository.OrderItem
	for _, i := range q.d.orderItems {
		if i.OrderID == orderID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (q *querier) ListOrderBundles(_ context.Context, orderID uuid.UUID) ([]repository.OrderBundle, error) {
	done, err := q.begin("ListOrderBundles")
	defer done()
	if err != nil {
		return nil, err
	}
	var out []repository.OrderBundle
	for _, b := range q.d.orderBundles {
		if b.OrderID == orderID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (q *querier) DeleteWishlistGames(_ context.Context, arg repository.DeleteWishlistGamesParams) (int64, error) {
	done, err := q.begin("DeleteWishlistGames")
	defer done()
	if err != nil {
		return 0, err
	}
	var keys []ownershipKey
	for _, id := range arg.GameIDs {
		key := ownershipKey{arg.UserID, id}
		if _, ok := q.d.wishlist[key]; ok {
			keys = append(keys, key)
		}
	}
	err = q.apply(func(d *data) error {
		for _, key := range keys {
			delete(d.wishlist, key)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int64(len(keys)), nil
}
