package account

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "account-register",
		Method:        http.MethodPost,
		Path:          "/api/v1/accounts/register",
		Summary:       "Register an account",
		Tags:          []string{"accounts"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "account-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/accounts/login",
		Summary:     "Log in and receive a bearer token",
		Tags:        []string{"accounts"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "account-logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/accounts/logout",
		Summary:     "Revoke the current bearer token",
		Tags:        []string{"accounts"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.authMiddleware,
	}
}
