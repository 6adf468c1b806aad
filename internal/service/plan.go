package service

import (
	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/pricing"
	"github.com/shopspring/decimal"
)

type LineStatus string

const (
	LinePayable   LineStatus = "payable"
	LineOwned     LineStatus = "owned"
	LineDuplicate LineStatus = "duplicate"
)

type ItemLine struct {
	Item   domain.CartItem
	Price  decimal.Decimal
	Status LineStatus
}

type BundleLine struct {
	Line  domain.CartBundle
	Quote pricing.BundleQuote
}

// Plan is the priced outcome of checking out a cart: what is charged and
// which games become owned.
type Plan struct {
	Items   []ItemLine
	Bundles []BundleLine
	Grants  []domain.PurchasedGame
	Total   decimal.Decimal
}

// BuildPlan prices a cart for a user who owns the games in owned.
//
// Items are processed before bundles. A game is charged at most once: an
// item already owned or already seen is skipped, and a bundle is discounted
// by the value of members that are owned or were charged earlier in the
// same plan. Bundle members become owned at a price of zero since the
// bundle price already covers them. When two bundles share a game, the one
// earlier in the cart pays for it and the later one is discounted by it.
func BuildPlan(userID int64, cart *domain.Cart, owned domain.GameSet) *Plan {
	p := &Plan{Total: decimal.Zero}
	processed := domain.NewGameSet()

	for _, item := range cart.Items {
		gameID := item.Game.ID
		switch {
		case owned.Has(gameID):
			p.Items = append(p.Items, ItemLine{Item: item, Price: decimal.Zero, Status: LineOwned})
			continue
		case processed.Has(gameID):
			p.Items = append(p.Items, ItemLine{Item: item, Price: decimal.Zero, Status: LineDuplicate})
			continue
		}

		price := pricing.EffectiveGamePrice(item.Game)
		p.Items = append(p.Items, ItemLine{Item: item, Price: price, Status: LinePayable})
		p.Total = p.Total.Add(price.Mul(decimal.NewFromInt32(item.Quantity)))
		p.Grants = append(p.Grants, domain.PurchasedGame{UserID: userID, GameID: gameID, PricePaid: price})
		processed.Add(gameID)
	}

	for _, line := range cart.Bundles {
		quote := pricing.QuoteBundle(line.Bundle, owned.Union(processed))
		p.Bundles = append(p.Bundles, BundleLine{Line: line, Quote: quote})
		p.Total = p.Total.Add(quote.Final.Mul(decimal.NewFromInt32(line.Quantity)))

		for _, g := range line.Bundle.Games {
			if owned.Has(g.ID) || processed.Has(g.ID) {
				continue
			}
			p.Grants = append(p.Grants, domain.PurchasedGame{UserID: userID, GameID: g.ID, PricePaid: decimal.Zero})
			processed.Add(g.ID)
		}
	}

	return p
}

// PayableItems returns the item lines that will be charged.
func (p *Plan) PayableItems() []ItemLine {
	var out []ItemLine
	for _, l := range p.Items {
		if l.Status == LinePayable {
			out = append(out, l)
		}
	}
	return out
}

// IsEmpty reports whether nothing would be ordered.
func (p *Plan) IsEmpty() bool {
	return len(p.PayableItems()) == 0 && len(p.Bundles) == 0
}

// GrantedGameIDs returns the games that become owned, in plan order.
func (p *Plan) GrantedGameIDs() []int64 {
	ids := make([]int64, len(p.Grants))
	for i, g := range p.Grants {
		ids[i] = g.GameID
	}
	return ids
}

// cartGameIDs returns every game referenced by the cart, directly or
// through a bundle.
func cartGameIDs(cart *domain.Cart) []int64 {
	seen := domain.NewGameSet()
	var ids []int64
	add := func(id int64) {
		if !seen.Has(id) {
			seen.Add(id)
			ids = append(ids, id)
		}
	}
	for _, item := range cart.Items {
		add(item.Game.ID)
	}
	for _, line := range cart.Bundles {
		for _, g := range line.Bundle.Games {
			add(g.ID)
		}
	}
	return ids
}
