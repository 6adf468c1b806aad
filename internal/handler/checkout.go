package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const checkoutMessage = "Order placed successfully"

type checkoutOutput struct {
	Body struct {
		OrderID     string `json:"orderId" format:"uuid"`
		TotalAmount string `json:"totalAmount"`
		Message     string `json:"message"`
	}
}

func (h *Handler) registerCheckout(api huma.API) {
	huma.Register(api, secured(huma.Operation{
		OperationID: "checkout",
		Summary:     "Check out the cart",
		Description: "Turns the cart into a completed order. A 409 means a concurrent checkout won and the request can be retried.",
		Method:      http.MethodPost,
		Path:        "/checkout",
		Errors: []int{
			http.StatusBadRequest,
			http.StatusConflict,
			http.StatusUnprocessableEntity,
			http.StatusInternalServerError,
		},
		Tags: []string{"Checkout"},
	}), h.checkout)
}

func (h *Handler) checkout(ctx context.Context, _ *struct{}) (*checkoutOutput, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	order, err := h.checkoutService.Checkout(ctx, userID)
	if err != nil {
		return nil, apiError(err, true)
	}

	out := &checkoutOutput{}
	out.Body.OrderID = order.ID.String()
	out.Body.TotalAmount = money(order.TotalAmount)
	out.Body.Message = checkoutMessage
	return out, nil
}
