package repotest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/repository"
	"github.com/set-night/gamestore/internal/repository/repotest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID int64 = 7

func purchase(gameID int64) repository.CreatePurchasedGameParams {
	return repository.CreatePurchasedGameParams{
		UserID:       userID,
		GameID:       gameID,
		PurchaseDate: time.Now(),
		PricePaid:    decimal.RequireFromString("10.00"),
	}
}

func TestExecTx_CommitKeepsOutsideWrites(t *testing.T) {
	t.Parallel()
	s := repotest.NewStore()
	ctx := context.Background()

	a := s.AddGame("A", "10.00", nil)
	b := s.AddGame("B", "15.00", nil)
	cart, err := s.EnsureCart(ctx, userID)
	require.NoError(t, err)
	_, err = s.CreateCartItem(ctx, repository.CreateCartItemParams{CartID: cart.ID, GameID: a, Quantity: 1})
	require.NoError(t, err)

	err = s.ExecTx(ctx, func(q repository.Querier) error {
		if err := q.ClearCart(ctx, cart.ID); err != nil {
			return err
		}
		// Written outside the transaction while it is open.
		if _, err := s.CreateCartItem(ctx, repository.CreateCartItemParams{CartID: cart.ID, GameID: b, Quantity: 1}); err != nil {
			return err
		}
		_, err := q.CreateOrder(ctx, repository.CreateOrderParams{
			ID:          uuid.New(),
			UserID:      userID,
			OrderDate:   time.Now(),
			TotalAmount: decimal.RequireFromString("10.00"),
			Status:      string(domain.OrderStatusCompleted),
		})
		return err
	})
	require.NoError(t, err)

	items, err := s.ListCartItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1, "the item added outside the transaction survives its commit")
	assert.Equal(t, b, items[0].GameID)
	assert.Len(t, s.Orders(), 1)
}

func TestExecTx_FailureLeavesNothing(t *testing.T) {
	t.Parallel()
	s := repotest.NewStore()
	ctx := context.Background()

	a := s.AddGame("A", "10.00", nil)
	cart, err := s.EnsureCart(ctx, userID)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.CreateCartItem(ctx, repository.CreateCartItemParams{CartID: cart.ID, GameID: a, Quantity: 1}); err != nil {
			return err
		}
		if err := q.CreatePurchasedGame(ctx, purchase(a)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	items, _ := s.CartSize(userID)
	assert.Zero(t, items)
	assert.Empty(t, s.Ownership(userID))
}

func TestExecTx_ReadsOwnWrites(t *testing.T) {
	t.Parallel()
	s := repotest.NewStore()
	ctx := context.Background()

	a := s.AddGame("A", "10.00", nil)
	err := s.ExecTx(ctx, func(q repository.Querier) error {
		require.NoError(t, q.CreatePurchasedGame(ctx, purchase(a)))

		owned, err := q.IsGameOwned(ctx, repository.IsGameOwnedParams{UserID: userID, GameID: a})
		require.NoError(t, err)
		assert.True(t, owned)

		owned, err = s.IsGameOwned(ctx, repository.IsGameOwnedParams{UserID: userID, GameID: a})
		require.NoError(t, err)
		assert.False(t, owned, "uncommitted writes are not visible outside")
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, s.Ownership(userID), 1)
}

func TestExecTx_OverlappingOwnershipFailsLaterCommit(t *testing.T) {
	t.Parallel()
	s := repotest.NewStore()
	ctx := context.Background()

	a := s.AddGame("A", "10.00", nil)
	err := s.ExecTx(ctx, func(outer repository.Querier) error {
		owned, err := outer.IsGameOwned(ctx, repository.IsGameOwnedParams{UserID: userID, GameID: a})
		require.NoError(t, err)
		require.False(t, owned)

		// A second transaction grants the same game and commits first.
		require.NoError(t, s.ExecTx(ctx, func(inner repository.Querier) error {
			return inner.CreatePurchasedGame(ctx, purchase(a))
		}))

		return outer.CreatePurchasedGame(ctx, purchase(a))
	})
	require.ErrorIs(t, err, domain.ErrDuplicateOwnership)
	assert.Len(t, s.Ownership(userID), 1)
}

func TestExecTx_CommitFault(t *testing.T) {
	t.Parallel()
	s := repotest.NewStore()
	ctx := context.Background()

	a := s.AddGame("A", "10.00", nil)
	s.FailOn("Commit", errors.New("connection lost"))
	err := s.ExecTx(ctx, func(q repository.Querier) error {
		return q.CreatePurchasedGame(ctx, purchase(a))
	})
	require.Error(t, err)
	assert.Empty(t, s.Ownership(userID))
	assert.Equal(t, 1, s.Calls("Commit"))
}
