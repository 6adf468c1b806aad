package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/set-night/gamestore/internal/domain"
)

type OrderCompleted struct {
	OrderID     uuid.UUID `json:"orderId"`
	UserID      int64     `json:"userId"`
	TotalAmount string    `json:"totalAmount"`
	Status      string    `json:"status"`
	OrderDate   time.Time `json:"orderDate"`
	GameIDs     []int64   `json:"gameIds"`
	BundleIDs   []int64   `json:"bundleIds"`
}

func NewOrderCompleted(order *domain.Order) OrderCompleted {
	ev := OrderCompleted{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount.StringFixed(2),
		Status:      string(order.Status),
		OrderDate:   order.OrderDate.UTC(),
		GameIDs:     make([]int64, 0, len(order.Items)),
		BundleIDs:   make([]int64, 0, len(order.Bundles)),
	}
	for _, it := range order.Items {
		ev.GameIDs = append(ev.GameIDs, it.GameID)
	}
	for _, b := range order.Bundles {
		ev.BundleIDs = append(ev.BundleIDs, b.BundleID)
	}
	return ev
}
