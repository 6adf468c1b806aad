package service

import (
	"context"
	"fmt"
	"time"

	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/repository"
	"github.com/shopspring/decimal"
)

// OwnershipService is the ownership ledger: a purchased_games row is the
// only proof that a user owns a game.
type OwnershipService struct {
	store repository.Store
}

func NewOwnershipService(store repository.Store) *OwnershipService {
	return &OwnershipService{store: store}
}

func (s *OwnershipService) IsOwned(ctx context.Context, userID, gameID int64) (bool, error) {
	owned, err := s.store.IsGameOwned(ctx, repository.IsGameOwnedParams{
		UserID: userID,
		GameID: gameID,
	})
	if err != nil {
		return false, fmt.Errorf("check ownership: %w", err)
	}
	return owned, nil
}

// OwnedGameIDs returns the subset of candidates the user owns.
func (s *OwnershipService) OwnedGameIDs(ctx context.Context, userID int64, candidates []int64) (domain.GameSet, error) {
	return ownedGameIDs(ctx, s.store, userID, candidates)
}

// RecordPurchase fails with domain.ErrDuplicateOwnership when the user
// already owns the game.
func (s *OwnershipService) RecordPurchase(ctx context.Context, userID, gameID int64, pricePaid decimal.Decimal, at time.Time) error {
	return recordPurchase(ctx, s.store, domain.PurchasedGame{
		UserID:       userID,
		GameID:       gameID,
		PurchaseDate: at,
		PricePaid:    pricePaid,
	})
}

// Library lists every game the user owns.
func (s *OwnershipService) Library(ctx context.Context, userID int64) ([]domain.PurchasedGame, error) {
	rows, err := s.store.ListPurchasedGames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchased games: %w", err)
	}
	out := make([]domain.PurchasedGame, len(rows))
	for i, row := range rows {
		out[i] = rowToPurchasedGame(row)
	}
	return out, nil
}

func ownedGameIDs(ctx context.Context, q repository.Querier, userID int64, candidates []int64) (domain.GameSet, error) {
	if len(candidates) == 0 {
		return domain.NewGameSet(), nil
	}
	ids, err := q.ListOwnedGameIDs(ctx, repository.ListOwnedGameIDsParams{
		UserID:  userID,
		GameIDs: candidates,
	})
	if err != nil {
		return nil, fmt.Errorf("list owned games: %w", err)
	}
	return domain.NewGameSet(ids...), nil
}

func recordPurchase(ctx context.Context, q repository.Querier, p domain.PurchasedGame) error {
	err := q.CreatePurchasedGame(ctx, repository.CreatePurchasedGameParams{
		UserID:       p.UserID,
		GameID:       p.GameID,
		PurchaseDate: p.PurchaseDate,
		PricePaid:    p.PricePaid,
	})
	if err != nil {
		return fmt.Errorf("record purchase of game %d: %w", p.GameID, err)
	}
	return nil
}
