package account

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"revhistory/internal/app/server/api/http/middleware/auth"
	"revhistory/internal/domain/account"
	"revhistory/internal/domain/entity"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, login, displayName, password string) (int, error) {
	args := m.Called(ctx, login, displayName, password)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Authenticate(ctx context.Context, login, password string) (account.Account, error) {
	args := m.Called(ctx, login, password)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id int) (entity.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Account), args.Error(1)
}

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Create(ctx context.Context, accountID int) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}

func (m *MockSession) Validate(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func (m *MockSession) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected huma status error, got %v", err)
	return se.GetStatus()
}

func newHandler(svc *MockService, sess *MockSession) *Handler {
	return NewHandler(svc, sess, slog.Default(), huma.Middlewares{}, huma.Middlewares{})
}

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "success"},
		{name: "login taken", err: account.ErrLoginTaken, wantStatus: http.StatusConflict},
		{name: "invalid input", err: account.ErrInvalidInput, wantStatus: http.StatusUnprocessableEntity},
		{name: "storage failure", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Register", mock.Anything, "alice", "Alice", "Secret1!x").Return(7, tt.err)
			h := newHandler(svc, new(MockSession))

			input := &registerInput{}
			input.Body.Login = "alice"
			input.Body.Password = "Secret1!x"
			input.Body.DisplayName = "Alice"

			out, err := h.register(context.Background(), input)

			if tt.wantStatus != 0 {
				assert.Nil(t, out)
				assert.Equal(t, tt.wantStatus, statusOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 7, out.Body.ID)
			assert.Equal(t, "Ok", out.Body.Status)
		})
	}
}

func TestHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockService)
		sess := new(MockSession)
		svc.On("Authenticate", mock.Anything, "alice", "pw").Return(account.Account{ID: 7}, nil)
		sess.On("Create", mock.Anything, 7).Return("token", nil)

		input := &loginInput{}
		input.Body.Login = "alice"
		input.Body.Password = "pw"

		out, err := newHandler(svc, sess).login(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, "token", out.Body.Token)
		sess.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := new(MockService)
		sess := new(MockSession)
		svc.On("Authenticate", mock.Anything, "alice", "bad").Return(account.Account{}, account.ErrInvalidAuth)

		input := &loginInput{}
		input.Body.Login = "alice"
		input.Body.Password = "bad"

		_, err := newHandler(svc, sess).login(context.Background(), input)

		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
		sess.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("session failure", func(t *testing.T) {
		svc := new(MockService)
		sess := new(MockSession)
		svc.On("Authenticate", mock.Anything, "alice", "pw").Return(account.Account{ID: 7}, nil)
		sess.On("Create", mock.Anything, 7).Return("", errors.New("db down"))

		input := &loginInput{}
		input.Body.Login = "alice"
		input.Body.Password = "pw"

		_, err := newHandler(svc, sess).login(context.Background(), input)

		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})
}

func TestHandler_Logout(t *testing.T) {
	t.Run("revokes token", func(t *testing.T) {
		sess := new(MockSession)
		sess.On("Revoke", mock.Anything, "token").Return(nil)

		ctx := auth.WithToken(context.Background(), "token")
		out, err := newHandler(new(MockService), sess).logout(ctx, &logoutInput{})

		require.NoError(t, err)
		assert.Equal(t, "Ok", out.Body.Status)
		sess.AssertExpectations(t)
	})

	t.Run("no token", func(t *testing.T) {
		_, err := newHandler(new(MockService), new(MockSession)).logout(context.Background(), &logoutInput{})

		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}
