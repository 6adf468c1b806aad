package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/set-night/gamestore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		atCheckout bool
		status     int
	}{
		{"unauthenticated", domain.ErrUnauthenticated, false, http.StatusUnauthorized},
		{"empty cart", domain.ErrEmptyCart, true, http.StatusBadRequest},
		{"nothing to checkout", domain.ErrNothingToCheckout, true, http.StatusBadRequest},
		{"conflict", fmt.Errorf("%w: %w", domain.ErrCheckoutConflict, domain.ErrDuplicateOwnership), true, http.StatusConflict},
		{"already owned", domain.ErrAlreadyOwned, false, http.StatusConflict},
		{"missing at checkout", domain.ErrCatalogEntityMissing, true, http.StatusUnprocessableEntity},
		{"missing elsewhere", domain.ErrCatalogEntityMissing, false, http.StatusNotFound},
		{"order not found", domain.ErrOrderNotFound, false, http.StatusNotFound},
		{"deadline", fmt.Errorf("list cart items: %w", context.DeadlineExceeded), true, http.StatusGatewayTimeout},
		{"cancelled", fmt.Errorf("get cart: %w", context.Canceled), true, http.StatusServiceUnavailable},
		{"persistence", fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, errors.New("disk full")), true, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var se huma.StatusError
			require.ErrorAs(t, apiError(tt.err, tt.atCheckout), &se)
			assert.Equal(t, tt.status, se.GetStatus())
		})
	}

	assert.NoError(t, apiError(nil, false))
}
