package account

import (
	"context"
	"errors"
	"testing"

	"revhistory/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, login, displayName, passwordHash string) (int, error) {
	args := m.Called(ctx, login, displayName, passwordHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (Account, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(Account), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Account), args.Error(1)
}

func newService(repo Repository) *Service {
	return NewService(repo, NewPasswordValidator(StrictPasswordPolicy), slog.Default())
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo)

	mockRepo.On("Create", mock.Anything, "editor", "Jane Editor", mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("Secret#123")) == nil
	})).Return(123, nil)

	id, err := service.Register(context.Background(), "editor", "  Jane Editor ", "Secret#123")
	require.NoError(t, err)
	assert.Equal(t, 123, id)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_DisplayNameDefaultsToLogin(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo)

	mockRepo.On("Create", mock.Anything, "editor", "editor", mock.AnythingOfType("string")).Return(1, nil)

	_, err := service.Register(context.Background(), "editor", "", "Secret#123")
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_Register_InvalidInput(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo)

	_, err := service.Register(context.Background(), "editor", "", "weak")
	assert.ErrorIs(t, err, ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo)

	mockRepo.On("Create", mock.Anything, "editor", "editor", mock.AnythingOfType("string")).Return(0, ErrLoginTaken)

	_, err := service.Register(context.Background(), "editor", "", "Secret#123")
	assert.ErrorIs(t, err, ErrLoginTaken)
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret#123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := Account{ID: 9, Login: "editor", DisplayName: "Jane", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		login    string
		password string
		setup    func(m *MockRepository)
		wantErr  error
		wantID   int
	}{
		{
			name:     "success",
			login:    "editor",
			password: "Secret#123",
			setup: func(m *MockRepository) {
				m.On("FindByLogin", mock.Anything, "editor").Return(stored, nil)
			},
			wantID: 9,
		},
		{
			name:     "wrong password",
			login:    "editor",
			password: "Wrong#123",
			setup: func(m *MockRepository) {
				m.On("FindByLogin", mock.Anything, "editor").Return(stored, nil)
			},
			wantErr: ErrInvalidAuth,
		},
		{
			name:     "unknown login",
			login:    "ghost",
			password: "Secret#123",
			setup: func(m *MockRepository) {
				m.On("FindByLogin", mock.Anything, "ghost").Return(Account{}, ErrNotFound)
			},
			wantErr: ErrInvalidAuth,
		},
		{
			name:     "invalid login format",
			login:    "x",
			password: "Secret#123",
			setup:    func(m *MockRepository) {},
			wantErr:  ErrInvalidAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.setup(mockRepo)
			service := newService(mockRepo)

			acc, err := service.Authenticate(context.Background(), tt.login, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, acc.ID)
		})
	}
}

func TestService_Authenticate_StorageError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("FindByLogin", mock.Anything, "editor").Return(Account{}, errors.New("database error"))
	service := newService(mockRepo)

	_, err := service.Authenticate(context.Background(), "editor", "Secret#123")
	assert.ErrorContains(t, err, "database error")
	assert.NotErrorIs(t, err, ErrInvalidAuth)
}

func TestService_Get(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("FindByID", mock.Anything, 9).Return(Account{ID: 9, Login: "editor", DisplayName: "Jane", PasswordHash: "x"}, nil)
	service := newService(mockRepo)

	acc, err := service.Get(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, entity.Account{ID: 9, Login: "editor", DisplayName: "Jane"}, acc)

	anon, err := service.Get(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, entity.Anonymous, anon)
}
