package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/gamestore/internal/config"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/repository"
)

// OrderPublisher announces completed orders to other services.
type OrderPublisher interface {
	PublishOrderCompleted(ctx context.Context, order *domain.Order) error
}

// PurchaseLogger mirrors purchases and failures to an operations channel.
type PurchaseLogger interface {
	LogPurchase(order *domain.Order, games int)
	LogError(err error, context string)
}

type CheckoutService struct {
	store     repository.Store
	publisher OrderPublisher
	tgLogger  PurchaseLogger
	timeout   time.Duration
	now       func() time.Time
}

// NewCheckoutService creates the checkout orchestrator. publisher and
// tgLogger may be nil.
func NewCheckoutService(store repository.Store, publisher OrderPublisher, tgLogger PurchaseLogger, timeout time.Duration) *CheckoutService {
	return &CheckoutService{
		store:     store,
		publisher: publisher,
		tgLogger:  tgLogger,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Checkout converts the user's cart into a completed order in one
// transaction: the order, its lines, the ownership records, the wishlist
// cleanup and the emptied cart commit together or not at all.
func (s *CheckoutService) Checkout(ctx context.Context, userID int64) (*domain.Order, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		order *domain.Order
		plan  *Plan
	)
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		row, err := q.GetCartByUserID(ctx, userID)
		if err != nil {
			if repository.IsNotFound(err) {
				return domain.ErrEmptyCart
			}
			return fmt.Errorf("get cart: %w", err)
		}

		cart, err := loadCartLines(ctx, q, row)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return domain.ErrEmptyCart
		}

		owned, err := ownedGameIDs(ctx, q, userID, cartGameIDs(cart))
		if err != nil {
			return err
		}

		plan = BuildPlan(userID, cart, owned)
		if plan.IsEmpty() {
			return domain.ErrNothingToCheckout
		}

		order, err = s.persist(ctx, q, userID, cart.ID, plan)
		return err
	})
	if err != nil {
		err = classifyCheckoutError(err)
		switch {
		case errors.Is(err, domain.ErrPersistenceFailure):
			slog.Error("checkout failed", "user_id", userID, "error", err)
			if s.tgLogger != nil {
				s.tgLogger.LogError(err, fmt.Sprintf("checkout user %d", userID))
			}
		case errors.Is(err, domain.ErrCheckoutConflict):
			slog.Warn("checkout conflict", "user_id", userID, "error", err)
		}
		return nil, err
	}

	slog.Info("checkout completed",
		"user_id", userID,
		"order_id", order.ID,
		"total", order.TotalAmount.StringFixed(2),
		"items", len(order.Items),
		"bundles", len(order.Bundles),
	)
	s.afterCommit(ctx, order, plan)
	return order, nil
}

func (s *CheckoutService) persist(ctx context.Context, q repository.Querier, userID, cartID int64, plan *Plan) (*domain.Order, error) {
	now := s.now().UTC()

	row, err := q.CreateOrder(ctx, repository.CreateOrderParams{
		ID:          uuid.New(),
		UserID:      userID,
		OrderDate:   now,
		TotalAmount: plan.Total,
		Status:      string(domain.OrderStatusCompleted),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	order := rowToOrder(row)

	for _, line := range plan.PayableItems() {
		item, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
			OrderID:  order.ID,
			GameID:   line.Item.Game.ID,
			Price:    line.Price,
			Quantity: line.Item.Quantity,
		})
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
		order.Items = append(order.Items, rowToOrderItem(item))
	}

	for _, line := range plan.Bundles {
		b, err := q.CreateOrderBundle(ctx, repository.CreateOrderBundleParams{
			OrderID:  order.ID,
			BundleID: line.Line.Bundle.ID,
			Price:    line.Quote.Final,
			Quantity: line.Line.Quantity,
		})
		if err != nil {
			return nil, fmt.Errorf("create order bundle: %w", err)
		}
		order.Bundles = append(order.Bundles, rowToOrderBundle(b))
	}

	for _, grant := range plan.Grants {
		grant.PurchaseDate = now
		if err := recordPurchase(ctx, q, grant); err != nil {
			return nil, err
		}
	}

	if err := removeFromWishlist(ctx, q, userID, plan.GrantedGameIDs()); err != nil {
		return nil, err
	}

	if err := q.ClearCart(ctx, cartID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	return order, nil
}

// afterCommit runs best-effort side effects. Failures are logged only.
func (s *CheckoutService) afterCommit(ctx context.Context, order *domain.Order, plan *Plan) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.AfterCommitTimeout)
	defer cancel()

	if err := s.store.IncrementGameSales(ctx, plan.GrantedGameIDs()); err != nil {
		slog.Warn("increment sales failed", "order_id", order.ID, "error", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCompleted(ctx, order); err != nil {
			slog.Warn("publish order completed failed", "order_id", order.ID, "error", err)
		}
	}

	if s.tgLogger != nil {
		s.tgLogger.LogPurchase(order, len(plan.Grants))
	}
}

// classifyCheckoutError maps a failed checkout transaction onto the error
// taxonomy. Ownership collisions and serialization failures mean a
// concurrent checkout won; anything unrecognised is a persistence failure.
func classifyCheckoutError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateOwnership),
		repository.IsUniqueViolation(err),
		repository.IsTxConflict(err):
		return fmt.Errorf("%w: %w", domain.ErrCheckoutConflict, err)
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrNothingToCheckout),
		errors.Is(err, domain.ErrCatalogEntityMissing),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
	}
}
