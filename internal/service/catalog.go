package service

import (
	"context"
	"fmt"

	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/repository"
)

// loadGame reads a game from the catalog tables. A missing row is
// domain.ErrCatalogEntityMissing.
func loadGame(ctx context.Context, q repository.Querier, id int64) (domain.Game, error) {
	row, err := q.GetGame(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return domain.Game{}, fmt.Errorf("%w: game %d", domain.ErrCatalogEntityMissing, id)
		}
		return domain.Game{}, fmt.Errorf("get game %d: %w", id, err)
	}
	return rowToGame(row), nil
}

// loadBundle reads a bundle with its member games.
func loadBundle(ctx context.Context, q repository.Querier, id int64) (domain.Bundle, error) {
	row, err := q.GetBundle(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return domain.Bundle{}, fmt.Errorf("%w: bundle %d", domain.ErrCatalogEntityMissing, id)
		}
		return domain.Bundle{}, fmt.Errorf("get bundle %d: %w", id, err)
	}

	games, err := q.ListBundleGames(ctx, id)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("list bundle %d games: %w", id, err)
	}
	return rowToBundle(row, games), nil
}
