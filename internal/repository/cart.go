package repository

import (
	"context"

	"github.com/set-night/gamestore/internal/domain"
	"github.com/shopspring/decimal"
)

const ensureCart = `
INSERT INTO carts (user_id) VALUES ($1)
ON CONFLICT (user_id) DO NOTHING`

// EnsureCart returns the user's cart, creating it if needed. Concurrent
// callers converge on the same row through the unique user_id.
func (q *Queries) EnsureCart(ctx context.Context, userID int64) (Cart, error) {
	if _, err := q.db.Exec(ctx, ensureCart, userID); err != nil {
		return Cart{}, err
	}
	return q.GetCartByUserID(ctx, userID)
}

const getCartByUserID = `
SELECT id, user_id, created_at FROM carts WHERE user_id = $1`

func (q *Queries) GetCartByUserID(ctx context.Context, userID int64) (Cart, error) {
	var c Cart
	err := q.db.QueryRow(ctx, getCartByUserID, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt)
	return c, err
}

const listCartItems = `
SELECT id, cart_id, game_id, quantity, added_at
FROM cart_items
WHERE cart_id = $1
ORDER BY added_at, id`

func (q *Queries) ListCartItems(ctx context.Context, cartID int64) ([]CartItem, error) {
	rows, err := q.db.Query(ctx, listCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CartItem
	for rows.Next() {
		var i CartItem
		if err := rows.Scan(&i.ID, &i.CartID, &i.GameID, &i.Quantity, &i.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listCartBundles = `
SELECT id, cart_id, bundle_id, quantity, price, added_at
FROM cart_bundles
WHERE cart_id = $1
ORDER BY added_at, id`

func (q *Queries) ListCartBundles(ctx context.Context, cartID int64) ([]CartBundle, error) {
	rows, err := q.db.Query(ctx, listCartBundles, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CartBundle
	for rows.Next() {
		var b CartBundle
		if err := rows.Scan(&b.ID, &b.CartID, &b.BundleID, &b.Quantity, &b.Price, &b.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

const createCartItem = `
INSERT INTO cart_items (cart_id, game_id, quantity)
VALUES ($1, $2, $3)
RETURNING id, cart_id, game_id, quantity, added_at`

type CreateCartItemParams struct {
	CartID   int64
	GameID   int64
	Quantity int32
}

// CreateCartItem returns domain.ErrAlreadyInCart when the game is already
// in the cart.
func (q *Queries) CreateCartItem(ctx context.Context, arg CreateCartItemParams) (CartItem, error) {
	var i CartItem
	err := q.db.QueryRow(ctx, createCartItem, arg.CartID, arg.GameID, arg.Quantity).Scan(
		&i.ID, &i.CartID, &i.GameID, &i.Quantity, &i.AddedAt,
	)
	if IsUniqueViolation(err) {
		return CartItem{}, domain.ErrAlreadyInCart
	}
	return i, err
}

const deleteCartItem = `
DELETE FROM cart_items WHERE cart_id = $1 AND game_id = $2`

type DeleteCartItemParams struct {
	CartID int64
	GameID int64
}

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCartItem, arg.CartID, arg.GameID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const createCartBundle = `
INSERT INTO cart_bundles (cart_id, bundle_id, quantity, price)
VALUES ($1, $2, $3, $4)
RETURNING id, cart_id, bundle_id, quantity, price, added_at`

type CreateCartBundleParams struct {
	CartID   int64
	BundleID int64
	Quantity int32
	Price    decimal.Decimal
}

// CreateCartBundle returns domain.ErrAlreadyInCart when the bundle is
// already in the cart.
func (q *Queries) CreateCartBundle(ctx context.Context, arg CreateCartBundleParams) (CartBundle, error) {
	var b CartBundle
	err := q.db.QueryRow(ctx, createCartBundle, arg.CartID, arg.BundleID, arg.Quantity, arg.Price).Scan(
		&b.ID, &b.CartID, &b.BundleID, &b.Quantity, &b.Price, &b.AddedAt,
	)
	if IsUniqueViolation(err) {
		return CartBundle{}, domain.ErrAlreadyInCart
	}
	return b, err
}

const deleteCartBundle = `
DELETE FROM cart_bundles WHERE cart_id = $1 AND bundle_id = $2`

type DeleteCartBundleParams struct {
	CartID   int64
	BundleID int64
}

func (q *Queries) DeleteCartBundle(ctx context.Context, arg DeleteCartBundleParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCartBundle, arg.CartID, arg.BundleID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const clearCartItems = `DELETE FROM cart_items WHERE cart_id = $1`

const clearCartBundles = `DELETE FROM cart_bundles WHERE cart_id = $1`

func (q *Queries) ClearCart(ctx context.Context, cartID int64) error {
	if _, err := q.db.Exec(ctx, clearCartItems, cartID); err != nil {
		return err
	}
	_, err := q.db.Exec(ctx, clearCartBundles, cartID)
	return err
}
