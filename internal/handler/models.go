package handler

import (
	"time"

	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/pricing"
	"github.com/set-night/gamestore/internal/service"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(pricing.Places)
}

type CartItemView struct {
	GameID    int64     `json:"gameId"`
	Title     string    `json:"title"`
	ListPrice string    `json:"listPrice" doc:"Catalog price before discount"`
	Price     string    `json:"price" doc:"Price charged at checkout, zero when skipped"`
	Status    string    `json:"status" enum:"payable,owned,duplicate"`
	Quantity  int32     `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

type CartBundleView struct {
	BundleID       int64     `json:"bundleId"`
	Name           string    `json:"name"`
	GameIDs        []int64   `json:"gameIds"`
	BasePrice      string    `json:"basePrice" doc:"Sum of the member games' prices"`
	EffectivePrice string    `json:"effectivePrice" doc:"Bundle price before owned games are deducted"`
	OwnedDiscount  string    `json:"ownedDiscount"`
	Price          string    `json:"price" doc:"Price charged at checkout"`
	PriceWhenAdded string    `json:"priceWhenAdded"`
	Quantity       int32     `json:"quantity"`
	AddedAt        time.Time `json:"addedAt"`
}

type CartView struct {
	CartID  int64            `json:"cartId"`
	Items   []CartItemView   `json:"items"`
	Bundles []CartBundleView `json:"bundles"`
	Total   string           `json:"total"`
}

func newCartView(cart *domain.Cart, plan *service.Plan) CartView {
	v := CartView{
		CartID:  cart.ID,
		Items:   make([]CartItemView, 0, len(plan.Items)),
		Bundles: make([]CartBundleView, 0, len(plan.Bundles)),
		Total:   money(plan.Total),
	}
	for _, l := range plan.Items {
		v.Items = append(v.Items, CartItemView{
			GameID:    l.Item.Game.ID,
			Title:     l.Item.Game.Title,
			ListPrice: money(l.Item.Game.Price),
			Price:     money(l.Price),
			Status:    string(l.Status),
			Quantity:  l.Item.Quantity,
			AddedAt:   l.Item.AddedAt,
		})
	}
	for _, l := range plan.Bundles {
		v.Bundles = append(v.Bundles, CartBundleView{
			BundleID:       l.Line.Bundle.ID,
			Name:           l.Line.Bundle.Name,
			GameIDs:        l.Line.Bundle.GameIDs(),
			BasePrice:      money(l.Quote.Base),
			EffectivePrice: money(l.Quote.Effective),
			OwnedDiscount:  money(l.Quote.OwnedDiscount),
			Price:          money(l.Quote.Final),
			PriceWhenAdded: money(l.Line.Price),
			Quantity:       l.Line.Quantity,
			AddedAt:        l.Line.AddedAt,
		})
	}
	return v
}

type OrderItemView struct {
	GameID   int64  `json:"gameId"`
	Price    string `json:"price"`
	Quantity int32  `json:"quantity"`
}

type OrderBundleView struct {
	BundleID int64  `json:"bundleId"`
	Price    string `json:"price"`
	Quantity int32  `json:"quantity"`
}

type OrderView struct {
	ID          string            `json:"id" format:"uuid"`
	OrderDate   time.Time         `json:"orderDate"`
	TotalAmount string            `json:"totalAmount"`
	Status      string            `json:"status"`
	Items       []OrderItemView   `json:"items,omitempty"`
	Bundles     []OrderBundleView `json:"bundles,omitempty"`
}

func newOrderView(o *domain.Order) OrderView {
	v := OrderView{
		ID:          o.ID.String(),
		OrderDate:   o.OrderDate,
		TotalAmount: money(o.TotalAmount),
		Status:      string(o.Status),
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, OrderItemView{GameID: it.GameID, Price: money(it.Price), Quantity: it.Quantity})
	}
	for _, b := range o.Bundles {
		v.Bundles = append(v.Bundles, OrderBundleView{BundleID: b.BundleID, Price: money(b.Price), Quantity: b.Quantity})
	}
	return v
}

type PurchaseView struct {
	GameID       int64     `json:"gameId"`
	PurchaseDate time.Time `json:"purchaseDate"`
	PricePaid    string    `json:"pricePaid"`
}
