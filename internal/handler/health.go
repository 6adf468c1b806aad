package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type healthOutput struct {
	Body struct {
		Status string `json:"status" enum:"ok"`
	}
}

func (h *Handler) registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Summary:     "Health check",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Errors:      []int{http.StatusServiceUnavailable},
		Tags:        []string{"System"},
	}, h.health)
}

func (h *Handler) health(ctx context.Context, _ *struct{}) (*healthOutput, error) {
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			return nil, huma.Error503ServiceUnavailable("database unavailable")
		}
	}
	out := &healthOutput{}
	out.Body.Status = "ok"
	return out, nil
}
