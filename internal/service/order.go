package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/set-night/gamestore/internal/config"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/repository"
)

type OrderService struct {
	store repository.Store
}

func NewOrderService(store repository.Store) *OrderService {
	return &OrderService{store: store}
}

// List returns one page of the user's orders, newest first, without lines.
func (s *OrderService) List(ctx context.Context, userID int64, page, pageSize int) ([]*domain.Order, error) {
	if pageSize <= 0 || pageSize > config.MaxOrdersPageSize {
		pageSize = config.OrdersPerPage
	}
	if page < 1 {
		page = 1
	}

	rows, err := s.store.ListOrdersByUser(ctx, repository.ListOrdersByUserParams{
		UserID: userID,
		Limit:  int32(pageSize),
		Offset: int32((page - 1) * pageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]*domain.Order, len(rows))
	for i, row := range rows {
		orders[i] = rowToOrder(row)
	}
	return orders, nil
}

// Get returns one of the user's orders with its items and bundles.
func (s *OrderService) Get(ctx context.Context, userID int64, orderID uuid.UUID) (*domain.Order, error) {
	row, err := s.store.GetOrder(ctx, repository.GetOrderParams{ID: orderID, UserID: userID})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	order := rowToOrder(row)

	items, err := s.store.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	for _, it := range items {
		order.Items = append(order.Items, rowToOrderItem(it))
	}

	bundles, err := s.store.ListOrderBundles(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order bundles: %w", err)
	}
	for _, b := range bundles {
		order.Bundles = append(order.Bundles, rowToOrderBundle(b))
	}

	return order, nil
}
