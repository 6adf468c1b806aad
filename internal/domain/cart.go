package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        int64
	UserID    int64
	Items     []CartItem
	Bundles   []CartBundle
	CreatedAt time.Time
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0 && len(c.Bundles) == 0
}

type CartItem struct {
	ID       int64
	Game     Game
	Quantity int32
	AddedAt  time.Time
}

type CartBundle struct {
	ID       int64
	Bundle   Bundle
	Quantity int32
	// Price is the price computed when the bundle was added. It is shown
	// to the user but never charged.
	Price   decimal.Decimal
	AddedAt time.Time
}
