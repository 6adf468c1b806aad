package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/shopspring/decimal"
)

const isGameOwned = `
SELECT EXISTS (
    SELECT 1 FROM purchased_games WHERE user_id = $1 AND game_id = $2
)`

type IsGameOwnedParams struct {
	UserID int64
	GameID int64
}

func (q *Queries) IsGameOwned(ctx context.Context, arg IsGameOwnedParams) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, isGameOwned, arg.UserID, arg.GameID).Scan(&exists)
	return exists, err
}

const listOwnedGameIDs = `
SELECT game_id FROM purchased_games
WHERE user_id = $1 AND game_id = ANY($2::bigint[])`

type ListOwnedGameIDsParams struct {
	UserID  int64
	GameIDs []int64
}

func (q *Queries) ListOwnedGameIDs(ctx context.Context, arg ListOwnedGameIDsParams) ([]int64, error) {
	rows, err := q.db.Query(ctx, listOwnedGameIDs, arg.UserID, arg.GameIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const createPurchasedGame = `
INSERT INTO purchased_games (user_id, game_id, purchase_date, price_paid)
VALUES ($1, $2, $3, $4)`

type CreatePurchasedGameParams struct {
	UserID       int64
	GameID       int64
	PurchaseDate time.Time
	PricePaid    decimal.Decimal
}

// CreatePurchasedGame returns domain.ErrDuplicateOwnership when the user
// already owns the game. The primary key is the only check.
func (q *Queries) CreatePurchasedGame(ctx context.Context, arg CreatePurchasedGameParams) error {
	_, err := q.db.Exec(ctx, createPurchasedGame,
		arg.UserID,
		arg.GameID,
		pgtype.Timestamptz{Time: arg.PurchaseDate, Valid: true},
		arg.PricePaid,
	)
	if IsUniqueViolation(err) {
		return domain.ErrDuplicateOwnership
	}
	return err
}

const listPurchasedGames = `
SELECT user_id, game_id, purchase_date, price_paid
FROM purchased_games
WHERE user_id = $1
ORDER BY purchase_date DESC, game_id`

func (q *Queries) ListPurchasedGames(ctx context.Context, userID int64) ([]PurchasedGame, error) {
	rows, err := q.db.Query(ctx, listPurchasedGames, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PurchasedGame
	for rows.Next() {
		var p PurchasedGame
		if err := rows.Scan(&p.UserID, &p.GameID, &p.PurchaseDate, &p.PricePaid); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
