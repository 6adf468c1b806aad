package handler

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/set-night/gamestore/internal/config"
	"github.com/set-night/gamestore/internal/domain"
)

type orderListInput struct {
	Page     int `query:"page" default:"1" minimum:"1" doc:"Page number"`
	PageSize int `query:"pageSize" default:"20" minimum:"1" maximum:"100" doc:"Orders per page"`
}

type orderListOutput struct {
	Body struct {
		Orders   []OrderView `json:"orders"`
		Page     int         `json:"page"`
		PageSize int         `json:"pageSize"`
	}
}

type orderGetInput struct {
	OrderID string `path:"orderId" format:"uuid" doc:"Order ID"`
}

type orderOutput struct {
	Body OrderView
}

type purchasesOutput struct {
	Body struct {
		Games []PurchaseView `json:"games"`
	}
}

type purchaseStatusOutput struct {
	Body struct {
		GameID int64 `json:"gameId"`
		Owned  bool  `json:"owned"`
	}
}

func (h *Handler) registerOrders(api huma.API) {
	huma.Register(api, secured(huma.Operation{
		OperationID: "order-list",
		Summary:     "List orders",
		Description: "Lists the user's orders, newest first.",
		Method:      http.MethodGet,
		Path:        "/orders",
		Tags:        []string{"Orders"},
	}), h.listOrders)

	huma.Register(api, secured(huma.Operation{
		OperationID: "order-get",
		Summary:     "Get order",
		Method:      http.MethodGet,
		Path:        "/orders/{orderId}",
		Errors:      []int{http.StatusNotFound},
		Tags:        []string{"Orders"},
	}), h.getOrder)

	huma.Register(api, secured(huma.Operation{
		OperationID: "purchase-list",
		Summary:     "List owned games",
		Method:      http.MethodGet,
		Path:        "/purchases",
		Tags:        []string{"Purchases"},
	}), h.listPurchases)

	huma.Register(api, secured(huma.Operation{
		OperationID: "purchase-status",
		Summary:     "Check game ownership",
		Method:      http.MethodGet,
		Path:        "/purchase/status/{gameId}",
		Tags:        []string{"Purchases"},
	}), h.purchaseStatus)
}

func (h *Handler) listOrders(ctx context.Context, in *orderListInput) (*orderListOutput, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	pageSize := in.PageSize
	if pageSize <= 0 || pageSize > config.MaxOrdersPageSize {
		pageSize = config.OrdersPerPage
	}
	page := max(in.Page, 1)

	orders, err := h.orderService.List(ctx, userID, page, pageSize)
	if err != nil {
		return nil, apiError(err, false)
	}

	out := &orderListOutput{}
	out.Body.Orders = make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out.Body.Orders = append(out.Body.Orders, newOrderView(o))
	}
	out.Body.Page = page
	out.Body.PageSize = pageSize
	return out, nil
}

func (h *Handler) getOrder(ctx context.Context, in *orderGetInput) (*orderOutput, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	orderID, err := uuid.Parse(in.OrderID)
	if err != nil {
		return nil, apiError(domain.ErrOrderNotFound, false)
	}

	order, err := h.orderService.Get(ctx, userID, orderID)
	if err != nil {
		return nil, apiError(err, false)
	}
	return &orderOutput{Body: newOrderView(order)}, nil
}

func (h *Handler) listPurchases(ctx context.Context, _ *struct{}) (*purchasesOutput, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	games, err := h.ownershipService.Library(ctx, userID)
	if err != nil {
		return nil, apiError(err, false)
	}

	out := &purchasesOutput{}
	out.Body.Games = make([]PurchaseView, 0, len(games))
	for _, g := range games {
		out.Body.Games = append(out.Body.Games, PurchaseView{
			GameID:       g.GameID,
			PurchaseDate: g.PurchaseDate,
			PricePaid:    money(g.PricePaid),
		})
	}
	return out, nil
}

func (h *Handler) purchaseStatus(ctx context.Context, in *gamePathInput) (*purchaseStatusOutput, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	owned, err := h.ownershipService.IsOwned(ctx, userID, in.GameID)
	if err != nil {
		return nil, apiError(err, false)
	}

	out := &purchaseStatusOutput{}
	out.Body.GameID = in.GameID
	out.Body.Owned = owned
	return out, nil
}
