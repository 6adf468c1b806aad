package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "Completed"
)

type Order struct {
	ID          uuid.UUID
	UserID      int64
	OrderDate   time.Time
	TotalAmount decimal.Decimal
	Status      OrderStatus
	Items       []OrderItem
	Bundles     []OrderBundle
}

type OrderItem struct {
	ID       int64
	OrderID  uuid.UUID
	GameID   int64
	Price    decimal.Decimal
	Quantity int32
}

type OrderBundle struct {
	ID       int64
	OrderID  uuid.UUID
	BundleID int64
	Price    decimal.Decimal
	Quantity int32
}
