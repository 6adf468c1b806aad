package repository

import (
	"context"
	"fmt"
)

const getGame = `
SELECT id, title, price, discount_percentage, sales_count, created_at
FROM games
WHERE id = $1`

func (q *Queries) GetGame(ctx context.Context, id int64) (Game, error) {
	var g Game
	err := q.db.QueryRow(ctx, getGame, id).Scan(
		&g.ID,
		&g.Title,
		&g.Price,
		&g.DiscountPercentage,
		&g.SalesCount,
		&g.CreatedAt,
	)
	return g, err
}

const getBundle = `
SELECT id, name, price, discount_percentage, discount_price, starts_at, ends_at, created_at
FROM bundles
WHERE id = $1`

func (q *Queries) GetBundle(ctx context.Context, id int64) (Bundle, error) {
	var b Bundle
	err := q.db.QueryRow(ctx, getBundle, id).Scan(
		&b.ID,
		&b.Name,
		&b.Price,
		&b.DiscountPercentage,
		&b.DiscountPrice,
		&b.StartsAt,
		&b.EndsAt,
		&b.CreatedAt,
	)
	return b, err
}

const listBundleGames = `
SELECT g.id, g.title, g.price, g.discount_percentage, g.sales_count, g.created_at
FROM bundle_games bg
JOIN games g ON g.id = bg.game_id
WHERE bg.bundle_id = $1
ORDER BY g.id`

func (q *Queries) ListBundleGames(ctx context.Context, bundleID int64) ([]Game, error) {
	rows, err := q.db.Query(ctx, listBundleGames, bundleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(
			&g.ID,
			&g.Title,
			&g.Price,
			&g.DiscountPercentage,
			&g.SalesCount,
			&g.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

const incrementGameSales = `
UPDATE games SET sales_count = sales_count + 1
WHERE id = ANY($1::bigint[])`

func (q *Queries) IncrementGameSales(ctx context.Context, gameIDs []int64) error {
	if _, err := q.db.Exec(ctx, incrementGameSales, gameIDs); err != nil {
		return fmt.Errorf("increment sales: %w", err)
	}
	return nil
}
