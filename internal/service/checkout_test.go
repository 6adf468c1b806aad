package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout_EmptyCart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.checkout.Checkout(ctx, userID)
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Zero(t, f.store.CartCount(), "checkout must not create a cart")

	_, err = f.cart.Load(ctx, userID)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, userID)
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, f.store.Orders())
}

func TestCheckout_SingleDiscountedGame(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	gameID := f.store.AddGame("Starfall", "59.99", strptr("50"))
	f.store.AddToWishlist(userID, gameID)
	_, err := f.cart.AddItem(ctx, userID, gameID)
	require.NoError(t, err)

	order, err := f.checkout.Checkout(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	assert.Equal(t, userID, order.UserID)
	assertAmount(t, "30.00", order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, gameID, order.Items[0].GameID)
	assertAmount(t, "30.00", order.Items[0].Price)
	assert.Empty(t, order.Bundles)

	owned := f.store.Ownership(userID)
	require.Len(t, owned, 1)
	assertAmount(t, "30.00", owned[gameID])

	items, bundles := f.store.CartSize(userID)
	assert.Zero(t, items)
	assert.Zero(t, bundles)
	assert.Empty(t, f.store.WishlistGameIDs(userID))
	assert.Equal(t, int64(1), f.store.Game(gameID).SalesCount)
	assert.Len(t, f.publisher.orders, 1)
	assert.Equal(t, 1, f.logger.purchases)
}

func TestCheckout_SecondCallCreatesNoOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	gameID := f.store.AddGame("Starfall", "19.99", nil)
	_, err := f.cart.AddItem(ctx, userID, gameID)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, userID)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, userID)
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	assert.Len(t, f.store.Orders(), 1)
	assert.Len(t, f.store.Ownership(userID), 1)
}

func TestCheckout_SkipsOwnedItems(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.store.AddGame("A", "10.00", nil)
	b := f.store.AddGame("B", "15.00", nil)
	_, err := f.cart.AddItem(ctx, userID, a)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, userID, b)
	require.NoError(t, err)

	// Bought elsewhere after it was added to the cart.
	f.store.Grant(userID, a, "9.00")

	order, err := f.checkout.Checkout(ctx, userID)
	require.NoError(t, err)

	assertAmount(t, "15.00", order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, b, order.Items[0].GameID)

	owned := f.store.Ownership(userID)
	assertAmount(t, "9.00", owned[a])
	assertAmount(t, "15.00", owned[b])
}

func TestCheckout_NothingToCheckout(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.store.AddGame("A", "10.00", nil)
	_, err := f.cart.AddItem(ctx, userID, a)
	require.NoError(t, err)
	f.store.Grant(userID, a, "10.00")

	_, err = f.checkout.Checkout(ctx, userID)
	require.ErrorIs(t, err, domain.ErrNothingToCheckout)

	assert.Empty(t, f.store.Orders())
	items, _ := f.store.CartSize(userID)
	assert.Equal(t, 1, items, "cart must be left as it was")
}

func TestCheckout_BundleWithOwnedGame(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	cheap := f.store.AddGame("Cheap", "10.00", nil)
	pricey := f.store.AddGame("Pricey", "15.00", nil)
	bundleID := f.store.AddBundle(repotest.BundleSeed{Name: "Pair", GameIDs: []int64{cheap, pricey}})
	f.store.Grant(userID, cheap, "10.00")

	line, err := f.cart.AddBundle(ctx, userID, bundleID)
	require.NoError(t, err)
	assertAmount(t, "15.00", line.Price)

	order, err := f.checkout.Checkout(ctx, userID)
	require.NoError(t, err)

	assertAmount(t, "15.00", order.TotalAmount)
	require.Len(t, order.Bundles, 1)
	assertAmount(t, "15.00", order.Bundles[0].Price)
	assert.Empty(t, order.Items)

	owned := f.store.Ownership(userID)
	require.Len(t, owned, 2)
	assertAmount(t, "10.00", owned[cheap])
	assertAmount(t, "0", owned[pricey])
}

func TestCheckout_RepricesBundleInsteadOfTrustingCart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.store.AddGame("A", "10.00", nil)
	b := f.store.AddGame("B", "15.00", nil)
	bundleID := f.store.AddBundle(repotest.BundleSeed{Name: "Pair", GameIDs: []int64{a, b}})

	line, err := f.cart.AddBundle(ctx, userID, bundleID)
	require.NoError(t, err)
	assertAmount(t, "25.00", line.Price)

	f.store.Grant(userID, a, "10.00")

	order, err := f.checkout.Checkout(ctx, userID)
	require.NoError(t, err)
	assertAmount(t, "15.00", order.TotalAmount)
}

func TestCheckout_GameInCartAndInBundleChargedOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.store.AddGame("A", "10.00", nil)
	b := f.store.AddGame("B", "15.00", nil)
	bundleID := f.store.AddBundle(repotest.BundleSeed{Name: "Pair", GameIDs: []int64{a, b}})

	_, err := f.cart.AddItem(ctx, userID, a)
	require.NoError(t, err)
	_, err = f.cart.AddBundle(ctx, userID, bundleID)
	require.NoError(t, err)

	order, err := f.checkout.Checkout(ctx, userID)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assertAmount(t, "10.00", order.Items[0].Price)
	require.Len(t, order.Bundles, 1)
	assertAmount(t, "15.00", order.Bundles[0].Price)
	assertAmount(t, "25.00", order.TotalAmount)

	owned := f.store.Ownership(userID)
	require.Len(t, owned, 2)
	assertAmount(t, "10.00", owned[a])
	assertAmount(t, "0", owned[b])
}

func TestCheckout_IsAtomic(t *testing.T) {
	t.Parallel()

	for _, op := range []string{
		"CreateOrderItem",
		"CreateOrderBundle",
		"CreatePurchasedGame",
		"DeleteWishlistGames",
		"ClearCart",
		"Commit",
	} {
		t.Run(op, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			ctx := context.Background()

			a := f.store.AddGame("A", "10.00", nil)
			b := f.store.AddGame("B", "15.00", nil)
			c := f.store.AddGame("C", "5.00", nil)
			bundleID := f.store.AddBundle(repotest.BundleSeed{Name: "Pair", GameIDs: []int64{b, c}})
			f.store.AddToWishlist(userID, a)
			f.store.AddToWishlist(userID, b)

			_, err := f.cart.AddItem(ctx, userID, a)
			require.NoError(t, err)
			_, err = f.cart.AddBundle(ctx, userID, bundleID)
			require.NoError(t, err)

			f.store.FailOn(op, errors.New("disk full"))

			_, err = f.checkout.Checkout(ctx, userID)
			require.ErrorIs(t, err, domain.ErrPersistenceFailure)

			assert.Empty(t, f.store.Orders())
			assert.Zero(t, f.store.OrderItemCount())
			assert.Zero(t, f.store.OrderBundleCount())
			assert.Empty(t, f.store.Ownership(userID))
			assert.Equal(t, []int64{a, b}, f.store.WishlistGameIDs(userID))
			items, bundles := f.store.CartSize(userID)
			assert.Equal(t, 1, items)
			assert.Equal(t, 1, bundles)
			assert.Len(t, f.logger.errors, 1)
			assert.Empty(t, f.publisher.orders)
		})
	}
}

func TestCheckout_OwnershipCollisionIsConflict(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.store.AddGame("A", "10.00", nil)
	_, err := f.cart.AddItem(ctx, userID, a)
	require.NoError(t, err)

	// What the repository reports when a concurrent checkout inserted the
	// same (user, game) first.
	f.store.FailOn("CreatePurchasedGame", domain.ErrDuplicateOwnership)

	_, err = f.checkout.Checkout(ctx, userID)
	require.ErrorIs(t, err, domain.ErrCheckoutConflict)
	assert.NotErrorIs(t, err, domain.ErrPersistenceFailure)
	assert.Empty(t, f.store.Orders())
	items, _ := f.store.CartSize(userID)
	assert.Equal(t, 1, items)

	f.store.FailOn("CreatePurchasedGame", nil)

	order, err := f.checkout.Checkout(ctx, userID)
	require.NoError(t, err)
	assertAmount(t, "10.00", order.TotalAmount)
}

func TestCheckout_MissingCatalogEntity(t *testing.T) {
	t.Parallel()

	t.Run("game", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		a := f.store.AddGame("A", "10.00", nil)
		_, err := f.cart.AddItem(ctx, userID, a)
		require.NoError(t, err)
		f.store.DeleteGame(a)

		_, err = f.checkout.Checkout(ctx, userID)
		require.ErrorIs(t, err, domain.ErrCatalogEntityMissing)
		items, _ := f.store.CartSize(userID)
		assert.Equal(t, 1, items)
	})

	t.Run("bundle", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		a := f.store.AddGame("A", "10.00", nil)
		bundleID := f.store.AddBundle(repotest.BundleSeed{Name: "Solo", GameIDs: []int64{a}})
		_, err := f.cart.AddBundle(ctx, userID, bundleID)
		require.NoError(t, err)
		f.store.DeleteBundle(bundleID)

		_, err = f.checkout.Checkout(ctx, userID)
		require.ErrorIs(t, err, domain.ErrCatalogEntityMissing)
		assert.Empty(t, f.store.Orders())
	})
}

func TestCheckout_ConcurrentRequestsCreateOneOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.store.AddGame("A", "10.00", nil)
	b := f.store.AddGame("B", "15.00", nil)
	_, err := f.cart.AddItem(ctx, userID, a)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, userID, b)
	require.NoError(t, err)

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.checkout.Checkout(ctx, userID)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.True(t,
				errors.Is(err, domain.ErrEmptyCart) ||
					errors.Is(err, domain.ErrNothingToCheckout) ||
					errors.Is(err, domain.ErrCheckoutConflict),
				"unexpected error: %v", err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Len(t, f.store.Orders(), 1)
	assert.Len(t, f.store.Ownership(userID), 2)
}

func TestCheckout_OverlappingCheckoutsOneWins(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.store.AddGame("A", "10.00", nil)
	_, err := f.cart.AddItem(ctx, userID, a)
	require.NoError(t, err)

	// Both transactions read the cart and find nothing owned before either
	// commits, so only the ownership key can separate them.
	var atCommit sync.WaitGroup
	atCommit.Add(2)
	f.store.BeforeCommit(func() {
		atCommit.Done()
		atCommit.Wait()
	})

	errs := make(chan error, 2)
	for range 2 {
		go func() {
			_, err := f.checkout.Checkout(ctx, userID)
			errs <- err
		}()
	}

	var succeeded, conflicted int
	for range 2 {
		switch err := <-errs; {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrCheckoutConflict):
			conflicted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Len(t, f.store.Orders(), 1)
	assert.Equal(t, 1, f.store.OrderItemCount())
	assert.Len(t, f.store.Ownership(userID), 1)
	items, _ := f.store.CartSize(userID)
	assert.Zero(t, items)
}

func TestCheckout_SideEffectFailuresDoNotFailCheckout(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	a := f.store.AddGame("A", "10.00", nil)
	_, err := f.cart.AddItem(ctx, userID, a)
	require.NoError(t, err)

	f.store.FailOn("IncrementGameSales", errors.New("timeout"))
	f.publisher.err = errors.New("broker down")

	order, err := f.checkout.Checkout(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Len(t, f.store.Orders(), 1)
	assert.Equal(t, 1, f.store.Calls("IncrementGameSales"))
}

func TestCheckout_CancelledContextRollsBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := f.store.AddGame("A", "10.00", nil)
	_, err := f.cart.AddItem(context.Background(), userID, a)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.checkout.Checkout(ctx, userID)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.store.Orders())
	assert.Empty(t, f.store.Ownership(userID))
}
