package routes

import (
	"context"

	"revhistory/internal/routing"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	routes     []routing.Route
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(routes []routing.Route, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		routes:     routes,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) list(_ context.Context, _ *listInput) (*listOutput, error) {
	routes := h.routes
	if routes == nil {
		routes = []routing.Route{}
	}
	return &listOutput{Body: ListResponse{Routes: routes}}, nil
}
