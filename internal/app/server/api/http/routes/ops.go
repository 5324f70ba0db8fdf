package routes

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "routes-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/routes",
		Summary:     "List derived revision routes",
		Description: "Returns the revision view and version history routes derived from the configured record types",
		Tags:        []string{"routes"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
