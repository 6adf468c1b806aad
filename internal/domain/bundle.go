package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bundle struct {
	ID                 int64
	Name               string
	Price              decimal.Decimal
	DiscountPercentage *decimal.Decimal
	DiscountPrice      *decimal.Decimal
	StartsAt           *time.Time
	EndsAt             *time.Time
	Games              []Game
}

func (b *Bundle) GameIDs() []int64 {
	ids := make([]int64, len(b.Games))
	for i, g := range b.Games {
		ids[i] = g.ID
	}
	return ids
}

// IsActive reports whether now falls inside the bundle's optional window.
func (b *Bundle) IsActive(now time.Time) bool {
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}
