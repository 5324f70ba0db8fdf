package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"revhistory/internal/domain/entity"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, login, displayName, password string) (int, error)
	Authenticate(ctx context.Context, login, password string) (Account, error)
	Get(ctx context.Context, id int) (entity.Account, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With("component", "account_service"),
	}
}

func (s *Service) Register(ctx context.Context, login, displayName, password string) (int, error) {
	if err := s.validator.ValidateRegister(login, password); err != nil {
		s.log.Debug("validation failed", "login", login, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = login
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, login, displayName, string(hash))
	if err != nil {
		if !errors.Is(err, ErrLoginTaken) {
			s.log.Error("failed to create account", "login", login, "error", err)
		}
		return 0, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("account registered", "account_id", id)
	return id, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (Account, error) {
	if err := s.validator.ValidateLogin(login); err != nil {
		return Account{}, ErrInvalidAuth
	}

	acc, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidAuth
		}
		return Account{}, fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrInvalidAuth
	}

	return acc, nil
}

// Get returns the public view of an account.
func (s *Service) Get(ctx context.Context, id int) (entity.Account, error) {
	if id == entity.Anonymous.ID {
		return entity.Anonymous, nil
	}
	acc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return entity.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}
	return acc.Entity(), nil
}
