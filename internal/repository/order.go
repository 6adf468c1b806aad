package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const createOrder = `
INSERT INTO orders (id, user_id, order_date, total_amount, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, order_date, total_amount, status`

type CreateOrderParams struct {
	ID          uuid.UUID
	UserID      int64
	OrderDate   time.Time
	TotalAmount decimal.Decimal
	Status      string
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, createOrder,
		arg.ID,
		arg.UserID,
		pgtype.Timestamptz{Time: arg.OrderDate, Valid: true},
		arg.TotalAmount,
		arg.Status,
	).Scan(&o.ID, &o.UserID, &o.OrderDate, &o.TotalAmount, &o.Status)
	return o, err
}

const createOrderItem = `
INSERT INTO order_items (order_id, game_id, price, quantity)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, game_id, price, quantity`

type CreateOrderItemParams struct {
	OrderID  uuid.UUID
	GameID   int64
	Price    decimal.Decimal
	Quantity int32
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	var i OrderItem
	err := q.db.QueryRow(ctx, createOrderItem, arg.OrderID, arg.GameID, arg.Price, arg.Quantity).Scan(
		&i.ID, &i.OrderID, &i.GameID, &i.Price, &i.Quantity,
	)
	return i, err
}

const createOrderBundle = `
INSERT INTO order_bundles (order_id, bundle_id, price, quantity)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, bundle_id, price, quantity`

type CreateOrderBundleParams struct {
	OrderID  uuid.UUID
	BundleID int64
	Price    decimal.Decimal
	Quantity int32
}

func (q *Queries) CreateOrderBundle(ctx context.Context, arg CreateOrderBundleParams) (OrderBundle, error) {
	var b OrderBundle
	err := q.db.QueryRow(ctx, createOrderBundle, arg.OrderID, arg.BundleID, arg.Price, arg.Quantity).Scan(
		&b.ID, &b.OrderID, &b.BundleID, &b.Price, &b.Quantity,
	)
	return b, err
}

const getOrder = `
SELECT id, user_id, order_date, total_amount, status
FROM orders
WHERE id = $1 AND user_id = $2`

type GetOrderParams struct {
	ID     uuid.UUID
	UserID int64
}

func (q *Queries) GetOrder(ctx context.Context, arg GetOrderParams) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, getOrder, arg.ID, arg.UserID).Scan(
		&o.ID, &o.UserID, &o.OrderDate, &o.TotalAmount, &o.Status,
	)
	return o, err
}

const listOrdersByUser = `
SELECT id, user_id, order_date, total_amount, status
FROM orders
WHERE user_id = $1
ORDER BY order_date DESC, id
LIMIT $2 OFFSET $3`

type ListOrdersByUserParams struct {
	UserID int64
	Limit  int32
	Offset int32
}

func (q *Queries) ListOrdersByUser(ctx context.Context, arg ListOrdersByUserParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrdersByUser, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderDate, &o.TotalAmount, &o.Status); err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}

const listOrderItems = `
SELECT id, order_id, game_id, price, quantity
FROM order_items
WHERE order_id = $1
ORDER BY id`

func (q *Queries) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.GameID, &i.Price, &i.Quantity); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listOrderBundles = `
SELECT id, order_id, bundle_id, price, quantity
FROM order_bundles
WHERE order_id = $1
ORDER BY id`

func (q *Queries) ListOrderBundles(ctx context.Context, orderID uuid.UUID) ([]OrderBundle, error) {
	rows, err := q.db.Query(ctx, listOrderBundles, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderBundle
	for rows.Next() {
		var b OrderBundle
		if err := rows.Scan(&b.ID, &b.OrderID, &b.BundleID, &b.Price, &b.Quantity); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}
