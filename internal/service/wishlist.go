package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/set-night/gamestore/internal/repository"
)

type WishlistService struct {
	store repository.Store
}

func NewWishlistService(store repository.Store) *WishlistService {
	return &WishlistService{store: store}
}

// RemoveFromWishlist deletes the user's wishlist entries for gameIDs.
// Missing entries are not an error.
func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID int64, gameIDs []int64) error {
	return removeFromWishlist(ctx, s.store, userID, gameIDs)
}

func removeFromWishlist(ctx context.Context, q repository.Querier, userID int64, gameIDs []int64) error {
	if len(gameIDs) == 0 {
		return nil
	}
	n, err := q.DeleteWishlistGames(ctx, repository.DeleteWishlistGamesParams{
		UserID:  userID,
		GameIDs: gameIDs,
	})
	if err != nil {
		return fmt.Errorf("delete wishlist games: %w", err)
	}
	if n > 0 {
		slog.Debug("wishlist entries removed", "user_id", userID, "count", n)
	}
	return nil
}
