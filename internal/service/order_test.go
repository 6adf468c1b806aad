package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/repository/repotest"
	"github.com/set-night/gamestore/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Get(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	orders := service.NewOrderService(f.store)
	ctx := context.Background()

	a := f.store.AddGame("A", "10.00", nil)
	b := f.store.AddGame("B", "15.00", nil)
	bundleID := f.store.AddBundle(repotest.BundleSeed{Name: "Solo", GameIDs: []int64{b}})
	_, err := f.cart.AddItem(ctx, userID, a)
	require.NoError(t, err)
	_, err = f.cart.AddBundle(ctx, userID, bundleID)
	require.NoError(t, err)

	placed, err := f.checkout.Checkout(ctx, userID)
	require.NoError(t, err)

	got, err := orders.Get(ctx, userID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
	assert.Equal(t, domain.OrderStatusCompleted, got.Status)
	assertAmount(t, "25.00", got.TotalAmount)
	require.Len(t, got.Items, 1)
	assert.Equal(t, a, got.Items[0].GameID)
	require.Len(t, got.Bundles, 1)
	assert.Equal(t, bundleID, got.Bundles[0].BundleID)

	_, err = orders.Get(ctx, userID+1, placed.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = orders.Get(ctx, userID, uuid.New())
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderService_List(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	orders := service.NewOrderService(f.store)
	ctx := context.Background()

	var placed []uuid.UUID
	for _, title := range []string{"A", "B", "C"} {
		id := f.store.AddGame(title, "10.00", nil)
		_, err := f.cart.AddItem(ctx, userID, id)
		require.NoError(t, err)
		o, err := f.checkout.Checkout(ctx, userID)
		require.NoError(t, err)
		placed = append(placed, o.ID)
	}

	all, err := orders.List(ctx, userID, 1, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, placed[2], all[0].ID, "newest first")

	page, err := orders.List(ctx, userID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, placed[0], page[0].ID)

	none, err := orders.List(ctx, userID+1, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
