package service

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/repository"
	"github.com/shopspring/decimal"
)

// pgTimestamptzToTime converts pgtype.Timestamptz to time.Time.
func pgTimestamptzToTime(ts pgtype.Timestamptz) time.Time {
	if ts.Valid {
		return ts.Time
	}
	return time.Time{}
}

// pgTimestamptzToTimePtr converts pgtype.Timestamptz to *time.Time.
func pgTimestamptzToTimePtr(ts pgtype.Timestamptz) *time.Time {
	if ts.Valid {
		t := ts.Time
		return &t
	}
	return nil
}

// nullDecimalToPtr converts decimal.NullDecimal to *decimal.Decimal.
func nullDecimalToPtr(d decimal.NullDecimal) *decimal.Decimal {
	if d.Valid {
		v := d.Decimal
		return &v
	}
	return nil
}

func rowToGame(row repository.Game) domain.Game {
	return domain.Game{
		ID:                 row.ID,
		Title:              row.Title,
		Price:              row.Price,
		DiscountPercentage: nullDecimalToPtr(row.DiscountPercentage),
		SalesCount:         row.SalesCount,
		CreatedAt:          pgTimestamptzToTime(row.CreatedAt),
	}
}

func rowToBundle(row repository.Bundle, games []repository.Game) domain.Bundle {
	b := domain.Bundle{
		ID:                 row.ID,
		Name:               row.Name,
		Price:              row.Price,
		DiscountPercentage: nullDecimalToPtr(row.DiscountPercentage),
		DiscountPrice:      nullDecimalToPtr(row.DiscountPrice),
		StartsAt:           pgTimestamptzToTimePtr(row.StartsAt),
		EndsAt:             pgTimestamptzToTimePtr(row.EndsAt),
		Games:              make([]domain.Game, len(games)),
	}
	for i, g := range games {
		b.Games[i] = rowToGame(g)
	}
	return b
}

func rowToOrder(row repository.Order) *domain.Order {
	return &domain.Order{
		ID:          row.ID,
		UserID:      row.UserID,
		OrderDate:   pgTimestamptzToTime(row.OrderDate),
		TotalAmount: row.TotalAmount,
		Status:      domain.OrderStatus(row.Status),
	}
}

func rowToOrderItem(row repository.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ID:       row.ID,
		OrderID:  row.OrderID,
		GameID:   row.GameID,
		Price:    row.Price,
		Quantity: row.Quantity,
	}
}

func rowToOrderBundle(row repository.OrderBundle) domain.OrderBundle {
	return domain.OrderBundle{
		ID:       row.ID,
		OrderID:  row.OrderID,
		BundleID: row.BundleID,
		Price:    row.Price,
		Quantity: row.Quantity,
	}
}

func rowToPurchasedGame(row repository.PurchasedGame) domain.PurchasedGame {
	return domain.PurchasedGame{
		UserID:       row.UserID,
		GameID:       row.GameID,
		PurchaseDate: pgTimestamptzToTime(row.PurchaseDate),
		PricePaid:    row.PricePaid,
	}
}
