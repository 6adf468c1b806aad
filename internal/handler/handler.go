package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/middleware"
	"github.com/set-night/gamestore/internal/service"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds all dependencies needed by the HTTP operations.
type Handler struct {
	cartService      *service.CartService
	checkoutService  *service.CheckoutService
	ownershipService *service.OwnershipService
	orderService     *service.OrderService
	db               Pinger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	CartService      *service.CartService
	CheckoutService  *service.CheckoutService
	OwnershipService *service.OwnershipService
	OrderService     *service.OrderService
	DB               Pinger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cartService:      deps.CartService,
		checkoutService:  deps.CheckoutService,
		ownershipService: deps.OwnershipService,
		orderService:     deps.OrderService,
		db:               deps.DB,
	}
}

// Register adds every operation to api. Middleware must already be
// installed on api.
func (h *Handler) Register(api huma.API) {
	h.registerCart(api)
	h.registerCheckout(api)
	h.registerOrders(api)
	h.registerHealth(api)
}

var bearerSecurity = []map[string][]string{{middleware.SecurityScheme: {}}}

func secured(op huma.Operation) huma.Operation {
	op.Security = bearerSecurity
	op.Errors = append(op.Errors, http.StatusUnauthorized)
	return op
}

func currentUser(ctx context.Context) (int64, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, huma.Error401Unauthorized(domain.ErrUnauthenticated.Error())
	}
	return userID, nil
}

// apiError maps domain errors to HTTP status errors. A missing catalog
// entity is a 422 at checkout, where the client has to refresh its cart,
// and a 404 everywhere else.
func apiError(err error, atCheckout bool) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrNothingToCheckout):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, domain.ErrCheckoutConflict):
		return huma.Error409Conflict(domain.ErrCheckoutConflict.Error())
	case errors.Is(err, domain.ErrAlreadyOwned),
		errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrBundleUnavailable):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, domain.ErrCatalogEntityMissing):
		if atCheckout {
			return huma.Error422UnprocessableEntity("cart references a game or bundle that no longer exists, refresh the cart")
		}
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, domain.ErrNotInCart),
		errors.Is(err, domain.ErrOrderNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout("request timed out")
	case errors.Is(err, context.Canceled):
		return huma.Error503ServiceUnavailable("request cancelled")
	default:
		slog.Error("request failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
