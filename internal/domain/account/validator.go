package account

import (
	"errors"
	"fmt"
	"unicode"
)

const (
	MinLoginLen    = 3
	MaxLoginLen    = 32
	MinPasswordLen = 8
)

// Validator checks logins and passwords before they reach storage.
type Validator interface {
	ValidateRegister(login, password string) error
	ValidateLogin(login string) error
	ValidatePassword(password string) error
}

// PasswordPolicy lists the character classes a password must contain.
type PasswordPolicy struct {
	Lower   bool
	Upper   bool
	Digit   bool
	Special bool
}

// StrictPasswordPolicy requires every character class.
var StrictPasswordPolicy = PasswordPolicy{Lower: true, Upper: true, Digit: true, Special: true}

type PasswordValidator struct {
	policy PasswordPolicy
}

func NewPasswordValidator(policy PasswordPolicy) *PasswordValidator {
	return &PasswordValidator{policy: policy}
}

func (v *PasswordValidator) ValidateRegister(login, password string) error {
	if err := v.ValidateLogin(login); err != nil {
		return fmt.Errorf("login validation failed: %w", err)
	}
	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}
	return nil
}

func (v *PasswordValidator) ValidateLogin(login string) error {
	if len(login) < MinLoginLen {
		return fmt.Errorf("login must be at least %d characters", MinLoginLen)
	}
	if len(login) > MaxLoginLen {
		return fmt.Errorf("login must be at most %d characters", MaxLoginLen)
	}
	for _, r := range login {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return errors.New("login can only contain letters, digits, '_', '-', '.'")
		}
	}
	return nil
}

func (v *PasswordValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	var has PasswordPolicy
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			has.Lower = true
		case unicode.IsUpper(r):
			has.Upper = true
		case unicode.IsDigit(r):
			has.Digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			has.Special = true
		}
	}

	switch {
	case v.policy.Lower && !has.Lower:
		return errors.New("password must contain at least one lowercase letter")
	case v.policy.Upper && !has.Upper:
		return errors.New("password must contain at least one uppercase letter")
	case v.policy.Digit && !has.Digit:
		return errors.New("password must contain at least one digit")
	case v.policy.Special && !has.Special:
		return errors.New("password must contain at least one special character")
	}
	return nil
}
