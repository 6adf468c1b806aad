package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchasedGame is the ownership record for a (user, game) pair.
type PurchasedGame struct {
	UserID       int64
	GameID       int64
	PurchaseDate time.Time
	PricePaid    decimal.Decimal
}
