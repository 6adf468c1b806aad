package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/set-night/gamestore/internal/config"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/pricing"
	"github.com/set-night/gamestore/internal/repository"
)

type CartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) *CartService {
	return &CartService{store: store}
}

// Load returns the user's cart with its games and bundles, creating an
// empty cart on first access.
func (s *CartService) Load(ctx context.Context, userID int64) (*domain.Cart, error) {
	row, err := s.store.EnsureCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure cart: %w", err)
	}
	return loadCartLines(ctx, s.store, row)
}

// Quote prices the cart the same way checkout would, without changing
// anything. A user without a cart gets an empty one that is not stored.
func (s *CartService) Quote(ctx context.Context, userID int64) (*domain.Cart, *Plan, error) {
	row, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			cart := &domain.Cart{UserID: userID}
			return cart, BuildPlan(userID, cart, domain.NewGameSet()), nil
		}
		return nil, nil, fmt.Errorf("get cart: %w", err)
	}
	cart, err := loadCartLines(ctx, s.store, row)
	if err != nil {
		return nil, nil, err
	}
	owned, err := ownedGameIDs(ctx, s.store, userID, cartGameIDs(cart))
	if err != nil {
		return nil, nil, err
	}
	return cart, BuildPlan(userID, cart, owned), nil
}

func (s *CartService) AddItem(ctx context.Context, userID, gameID int64) (*domain.CartItem, error) {
	game, err := loadGame(ctx, s.store, gameID)
	if err != nil {
		return nil, err
	}

	owned, err := s.store.IsGameOwned(ctx, repository.IsGameOwnedParams{UserID: userID, GameID: gameID})
	if err != nil {
		return nil, fmt.Errorf("check ownership: %w", err)
	}
	if owned {
		return nil, domain.ErrAlreadyOwned
	}

	cart, err := s.store.EnsureCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure cart: %w", err)
	}

	row, err := s.store.CreateCartItem(ctx, repository.CreateCartItemParams{
		CartID:   cart.ID,
		GameID:   gameID,
		Quantity: config.DefaultQuantity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyInCart) {
			return nil, err
		}
		return nil, fmt.Errorf("create cart item: %w", err)
	}

	return &domain.CartItem{
		ID:       row.ID,
		Game:     game,
		Quantity: row.Quantity,
		AddedAt:  pgTimestamptzToTime(row.AddedAt),
	}, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, gameID int64) error {
	cart, err := s.store.EnsureCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("ensure cart: %w", err)
	}
	n, err := s.store.DeleteCartItem(ctx, repository.DeleteCartItemParams{CartID: cart.ID, GameID: gameID})
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if n == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

// AddBundle adds a bundle priced for this user at the time of adding. The
// stored price is informational; checkout always re-prices.
func (s *CartService) AddBundle(ctx context.Context, userID, bundleID int64) (*domain.CartBundle, error) {
	bundle, err := loadBundle(ctx, s.store, bundleID)
	if err != nil {
		return nil, err
	}
	if !bundle.IsActive(time.Now()) {
		return nil, domain.ErrBundleUnavailable
	}

	owned, err := ownedGameIDs(ctx, s.store, userID, bundle.GameIDs())
	if err != nil {
		return nil, err
	}
	if len(bundle.Games) > 0 && len(owned) == len(bundle.Games) {
		return nil, domain.ErrAlreadyOwned
	}

	cart, err := s.store.EnsureCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure cart: %w", err)
	}

	row, err := s.store.CreateCartBundle(ctx, repository.CreateCartBundleParams{
		CartID:   cart.ID,
		BundleID: bundleID,
		Quantity: config.DefaultQuantity,
		Price:    pricing.FinalBundlePrice(bundle, owned),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyInCart) {
			return nil, err
		}
		return nil, fmt.Errorf("create cart bundle: %w", err)
	}

	return &domain.CartBundle{
		ID:       row.ID,
		Bundle:   bundle,
		Quantity: row.Quantity,
		Price:    row.Price,
		AddedAt:  pgTimestamptzToTime(row.AddedAt),
	}, nil
}

func (s *CartService) RemoveBundle(ctx context.Context, userID, bundleID int64) error {
	cart, err := s.store.EnsureCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("ensure cart: %w", err)
	}
	n, err := s.store.DeleteCartBundle(ctx, repository.DeleteCartBundleParams{CartID: cart.ID, BundleID: bundleID})
	if err != nil {
		return fmt.Errorf("delete cart bundle: %w", err)
	}
	if n == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

// Clear removes every item and bundle from the user's cart.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	cart, err := s.store.EnsureCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("ensure cart: %w", err)
	}
	if err := s.store.ClearCart(ctx, cart.ID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// loadCartLines reads the cart's items and bundles with their catalog
// data. A line whose game or bundle was deleted from the catalog yields
// domain.ErrCatalogEntityMissing.
func loadCartLines(ctx context.Context, q repository.Querier, row repository.Cart) (*domain.Cart, error) {
	cart := &domain.Cart{
		ID:        row.ID,
		UserID:    row.UserID,
		CreatedAt: pgTimestamptzToTime(row.CreatedAt),
	}

	items, err := q.ListCartItems(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	for _, it := range items {
		game, err := loadGame(ctx, q, it.GameID)
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ID:       it.ID,
			Game:     game,
			Quantity: it.Quantity,
			AddedAt:  pgTimestamptzToTime(it.AddedAt),
		})
	}

	bundles, err := q.ListCartBundles(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart bundles: %w", err)
	}
	for _, b := range bundles {
		bundle, err := loadBundle(ctx, q, b.BundleID)
		if err != nil {
			return nil, err
		}
		cart.Bundles = append(cart.Bundles, domain.CartBundle{
			ID:       b.ID,
			Bundle:   bundle,
			Quantity: b.Quantity,
			Price:    b.Price,
			AddedAt:  pgTimestamptzToTime(b.AddedAt),
		})
	}

	return cart, nil
}
