package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"revhistory/internal/domain/entity"
	"revhistory/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const bearerPrefix = "Bearer "

// AccountGetter resolves a session's account for display and access checks.
type AccountGetter interface {
	Get(ctx context.Context, id int) (entity.Account, error)
}

type Auth struct {
	session  session.Servicer
	accounts AccountGetter
	log      *slog.Logger
}

func New(session session.Servicer, accounts AccountGetter, log *slog.Logger) *Auth {
	return &Auth{
		session:  session,
		accounts: accounts,
		log:      log.With("component", "auth_middleware"),
	}
}

type contextKey string

const (
	accountIDKey contextKey = "accountID"
	accountKey   contextKey = "account"
	tokenKey     contextKey = "token"
)

// Middleware rejects huma requests without a valid bearer token.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			writeUnauthorized(ctx.BodyWriter(), ctx.SetStatus, ctx.SetHeader)
			return
		}

		accountID, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			a.log.Warn("session validation failed", "error", err)
			writeUnauthorized(ctx.BodyWriter(), ctx.SetStatus, ctx.SetHeader)
			return
		}

		newCtx := WithToken(WithAccountID(ctx.Context(), accountID), token)
		next(huma.WithContext(ctx, newCtx))
	}
}

// Viewer resolves the requesting account for chi routes. Requests without a
// token continue as the anonymous account; an invalid token is rejected.
func (a *Auth) Viewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), entity.Anonymous)))
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			writeUnauthorized(w, w.WriteHeader, w.Header().Set)
			return
		}

		accountID, err := a.session.Validate(r.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrInvalidSession) {
				a.log.Error("session validation failed", "error", err)
			}
			writeUnauthorized(w, w.WriteHeader, w.Header().Set)
			return
		}

		account, err := a.accounts.Get(r.Context(), accountID)
		if err != nil {
			a.log.Error("failed to load viewer", "account_id", accountID, "error", err)
			writeUnauthorized(w, w.WriteHeader, w.Header().Set)
			return
		}

		ctx := WithAccountID(WithAccount(r.Context(), account), accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func writeUnauthorized(w io.Writer, setStatus func(int), setHeader func(string, string)) {
	setHeader("Content-Type", "application/json")
	setStatus(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}

func WithAccountID(ctx context.Context, accountID int) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

func GetAccountID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(accountIDKey).(int)
	return id, ok
}

func WithAccount(ctx context.Context, account entity.Account) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// GetAccount returns the viewer, or the anonymous account when none was resolved.
func GetAccount(ctx context.Context) entity.Account {
	if account, ok := ctx.Value(accountKey).(entity.Account); ok {
		return account
	}
	return entity.Anonymous
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
