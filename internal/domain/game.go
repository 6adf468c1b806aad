package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Game struct {
	ID                 int64
	Title              string
	Price              decimal.Decimal
	DiscountPercentage *decimal.Decimal
	SalesCount         int64
	CreatedAt          time.Time
}

// GameSet is a set of game ids.
type GameSet map[int64]struct{}

func NewGameSet(ids ...int64) GameSet {
	s := make(GameSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s GameSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s GameSet) Add(id int64) {
	s[id] = struct{}{}
}

// Union returns a new set containing the ids of s and other.
func (s GameSet) Union(other GameSet) GameSet {
	out := make(GameSet, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}
