package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type gamePathInput struct {
	GameID int64 `path:"gameId" minimum:"1" doc:"Game ID"`
}

type bundlePathInput struct {
	BundleID int64 `path:"bundleId" minimum:"1" doc:"Bundle ID"`
}

type cartOutput struct {
	Body CartView
}

func (h *Handler) registerCart(api huma.API) {
	huma.Register(api, secured(huma.Operation{
		OperationID: "cart-get",
		Summary:     "Get cart",
		Description: "Returns the cart priced as checkout would price it right now. Nothing is changed.",
		Method:      http.MethodGet,
		Path:        "/cart",
		Tags:        []string{"Cart"},
	}), h.getCart)

	huma.Register(api, secured(huma.Operation{
		OperationID:   "cart-clear",
		Summary:       "Clear cart",
		Method:        http.MethodDelete,
		Path:          "/cart/clear",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Cart"},
	}), h.clearCart)

	huma.Register(api, secured(huma.Operation{
		OperationID:   "cart-add-game",
		Summary:       "Add game to cart",
		Description:   "Adds the game and returns the re-priced cart.",
		Method:        http.MethodPost,
		Path:          "/cart/{gameId}",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusNotFound, http.StatusConflict},
		Tags:          []string{"Cart"},
	}), h.addGame)

	huma.Register(api, secured(huma.Operation{
		OperationID:   "cart-remove-game",
		Summary:       "Remove game from cart",
		Method:        http.MethodDelete,
		Path:          "/cart/{gameId}",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
		Tags:          []string{"Cart"},
	}), h.removeGame)

	huma.Register(api, secured(huma.Operation{
		OperationID:   "cart-add-bundle",
		Summary:       "Add bundle to cart",
		Description:   "Adds a bundle that is currently on sale and returns the re-priced cart.",
		Method:        http.MethodPost,
		Path:          "/cart/bundles/{bundleId}",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusNotFound, http.StatusConflict},
		Tags:          []string{"Cart"},
	}), h.addBundle)

	huma.Register(api, secured(huma.Operation{
		OperationID:   "cart-remove-bundle",
		Summary:       "Remove bundle from cart",
		Method:        http.MethodDelete,
		Path:          "/cart/bundles/{bundleId}",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
		Tags:          []string{"Cart"},
	}), h.removeBundle)
}

func (h *Handler) getCart(ctx context.Context, _ *struct{}) (*cartOutput, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	cart, plan, err := h.cartService.Quote(ctx, userID)
	if err != nil {
		return nil, apiError(err, false)
	}
	return &cartOutput{Body: newCartView(cart, plan)}, nil
}

func (h *Handler) addGame(ctx context.Context, in *gamePathInput) (*cartOutput, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := h.cartService.AddItem(ctx, userID, in.GameID); err != nil {
		return nil, apiError(err, false)
	}
	return h.getCart(ctx, nil)
}

func (h *Handler) removeGame(ctx context.Context, in *gamePathInput) (*struct{}, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.cartService.RemoveItem(ctx, userID, in.GameID); err != nil {
		return nil, apiError(err, false)
	}
	return nil, nil
}

func (h *Handler) addBundle(ctx context.Context, in *bundlePathInput) (*cartOutput, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := h.cartService.AddBundle(ctx, userID, in.BundleID); err != nil {
		return nil, apiError(err, false)
	}
	return h.getCart(ctx, nil)
}

func (h *Handler) removeBundle(ctx context.Context, in *bundlePathInput) (*struct{}, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.cartService.RemoveBundle(ctx, userID, in.BundleID); err != nil {
		return nil, apiError(err, false)
	}
	return nil, nil
}

func (h *Handler) clearCart(ctx context.Context, _ *struct{}) (*struct{}, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.cartService.Clear(ctx, userID); err != nil {
		return nil, apiError(err, false)
	}
	return nil, nil
}
