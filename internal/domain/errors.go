package domain

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNothingToCheckout    = errors.New("nothing to checkout: every item is already owned")
	ErrAlreadyOwned         = errors.New("game already owned")
	ErrAlreadyInCart        = errors.New("already in cart")
	ErrNotInCart            = errors.New("not in cart")
	ErrBundleUnavailable    = errors.New("bundle is not available")
	ErrCheckoutConflict     = errors.New("checkout conflict, please retry")
	ErrCatalogEntityMissing = errors.New("catalog entity no longer exists")
	ErrDuplicateOwnership   = errors.New("ownership record already exists")
	ErrPersistenceFailure   = errors.New("persistence failure")
	ErrOrderNotFound        = errors.New("order not found")
	ErrUnauthenticated      = errors.New("authentication required")
)
