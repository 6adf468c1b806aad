package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type Game struct {
	ID                 int64
	Title              string
	Price              decimal.Decimal
	DiscountPercentage decimal.NullDecimal
	SalesCount         int64
	CreatedAt          pgtype.Timestamptz
}

type Bundle struct {
	ID                 int64
	Name               string
	Price              decimal.Decimal
	DiscountPercentage decimal.NullDecimal
	DiscountPrice      decimal.NullDecimal
	StartsAt           pgtype.Timestamptz
	EndsAt             pgtype.Timestamptz
	CreatedAt          pgtype.Timestamptz
}

type Cart struct {
	ID        int64
	UserID    int64
	CreatedAt pgtype.Timestamptz
}

type CartItem struct {
	ID       int64
	CartID   int64
	GameID   int64
	Quantity int32
	AddedAt  pgtype.Timestamptz
}

type CartBundle struct {
	ID       int64
	CartID   int64
	BundleID int64
	Quantity int32
	Price    decimal.Decimal
	AddedAt  pgtype.Timestamptz
}

type Order struct {
	ID          uuid.UUID
	UserID      int64
	OrderDate   pgtype.Timestamptz
	TotalAmount decimal.Decimal
	Status      string
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

type PurchasedGame struct {
	UserID       int64
	GameID       int64
	PurchaseDate pgtype.Timestamptz
	PricePaid    decimal.Decimal
}
