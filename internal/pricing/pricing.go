// Package pricing computes game and bundle prices from catalog data and a
// user's ownership set. Every function is pure.
//
// Amounts are rounded to 2 places, half away from zero, after each
// multiplicative step: 59.99 at 50% off is 30.00.
package pricing

import (
	"github.com/set-night/gamestore/internal/domain"
	"github.com/shopspring/decimal"
)

const Places = 2

var hundred = decimal.NewFromInt(100)

// Round rounds an amount to cents, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// applyPercentage returns amount reduced by pct percent, rounded. A
// percentage of 100 or more yields zero.
func applyPercentage(amount, pct decimal.Decimal) decimal.Decimal {
	if pct.GreaterThanOrEqual(hundred) {
		return decimal.Zero
	}
	factor := decimal.NewFromInt(1).Sub(pct.Div(hundred))
	return Round(amount.Mul(factor))
}

func hasDiscount(pct *decimal.Decimal) bool {
	return pct != nil && pct.IsPositive()
}

// EffectiveGamePrice returns the game's price after its own discount.
func EffectiveGamePrice(g domain.Game) decimal.Decimal {
	if hasDiscount(g.DiscountPercentage) {
		return applyPercentage(g.Price, *g.DiscountPercentage)
	}
	return Round(g.Price)
}

// BundleBasePrice sums the effective prices of the bundle's games. Each
// term is rounded before it is added so the sum matches the per-game
// prices the user sees.
func BundleBasePrice(b domain.Bundle) decimal.Decimal {
	sum := decimal.Zero
	for _, g := range b.Games {
		sum = sum.Add(EffectiveGamePrice(g))
	}
	return sum
}

// BundleEffectivePrice resolves the bundle price in order of precedence:
// explicit discount price, percentage off the base price, the bundle's own
// price, and finally the base price.
func BundleEffectivePrice(b domain.Bundle) decimal.Decimal {
	switch {
	case b.DiscountPrice != nil:
		return *b.DiscountPrice
	case hasDiscount(b.DiscountPercentage):
		return applyPercentage(BundleBasePrice(b), *b.DiscountPercentage)
	case b.Price.IsPositive():
		return Round(b.Price)
	default:
		return BundleBasePrice(b)
	}
}

// OwnedDiscount is the value of the bundle's games that are in owned.
func OwnedDiscount(owned domain.GameSet, b domain.Bundle) decimal.Decimal {
	sum := decimal.Zero
	for _, g := range b.Games {
		if owned.Has(g.ID) {
			sum = sum.Add(EffectiveGamePrice(g))
		}
	}
	return sum
}

// FinalBundlePrice is the bundle price minus the owned discount, floored at
// zero.
func FinalBundlePrice(b domain.Bundle, owned domain.GameSet) decimal.Decimal {
	price := Round(BundleEffectivePrice(b).Sub(OwnedDiscount(owned, b)))
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// BundleQuote is a breakdown of a bundle's price for one user.
type BundleQuote struct {
	Base          decimal.Decimal
	Effective     decimal.Decimal
	OwnedDiscount decimal.Decimal
	Final         decimal.Decimal
}

func QuoteBundle(b domain.Bundle, owned domain.GameSet) BundleQuote {
	return BundleQuote{
		Base:          BundleBasePrice(b),
		Effective:     BundleEffectivePrice(b),
		OwnedDiscount: OwnedDiscount(owned, b),
		Final:         FinalBundlePrice(b, owned),
	}
}
