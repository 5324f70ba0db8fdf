package account

import (
	"context"
	"errors"

	"revhistory/internal/app/server/api/http/middleware/auth"
	"revhistory/internal/domain/account"
	"revhistory/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service        account.Servicer
	session        session.Servicer
	log            *slog.Logger
	middleware     huma.Middlewares
	authMiddleware huma.Middlewares
}

// NewHandler takes the public middlewares and the ones for operations that
// need a session.
func NewHandler(
	service account.Servicer,
	session session.Servicer,
	log *slog.Logger,
	middleware huma.Middlewares,
	authMiddleware huma.Middlewares,
) *Handler {
	return &Handler{
		service:        service,
		session:        session,
		log:            log.With("component", "account_handler"),
		middleware:     middleware,
		authMiddleware: authMiddleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	id, err := h.service.Register(ctx, input.Body.Login, input.Body.DisplayName, input.Body.Password)
	switch {
	case errors.Is(err, account.ErrLoginTaken):
		return nil, huma.Error409Conflict(err.Error())
	case errors.Is(err, account.ErrInvalidInput):
		return nil, huma.Error422UnprocessableEntity(err.Error())
	case err != nil:
		h.log.Error("register failed", "login", input.Body.Login, "error", err)
		return nil, huma.Error500InternalServerError("register failed")
	}

	return &registerOutput{
		Body: RegisterResponse{ID: id, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	a, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidAuth) {
			return nil, huma.Error401Unauthorized("Invalid credentials")
		}
		h.log.Error("authenticate failed", "login", input.Body.Login, "error", err)
		return nil, huma.Error500InternalServerError("login failed")
	}

	token, err := h.session.Create(ctx, a.ID)
	if err != nil {
		h.log.Error("create session failed", "account_id", a.ID, "error", err)
		return nil, huma.Error500InternalServerError("login failed")
	}

	return &loginOutput{
		Body: LoginResponse{Token: token, Status: "Ok"},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *logoutInput) (*logoutOutput, error) {
	token, ok := auth.GetToken(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.session.Revoke(ctx, token); err != nil {
		h.log.Error("revoke session failed", "error", err)
		return nil, huma.Error500InternalServerError("logout failed")
	}

	return &logoutOutput{Body: StatusResponse{Status: "Ok"}}, nil
}
