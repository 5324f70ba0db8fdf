package account

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordValidator_ValidateLogin(t *testing.T) {
	v := NewPasswordValidator(StrictPasswordPolicy)

	tests := []struct {
		name    string
		login   string
		wantErr string
	}{
		{name: "valid", login: "jane.doe-1_x"},
		{name: "too short", login: "ab", wantErr: "at least"},
		{name: "too long", login: strings.Repeat("a", MaxLoginLen+1), wantErr: "at most"},
		{name: "bad characters", login: "jane doe", wantErr: "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateLogin(tt.login)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPasswordValidator_ValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		policy   PasswordPolicy
		password string
		wantErr  string
	}{
		{name: "strict valid", policy: StrictPasswordPolicy, password: "Secret#123"},
		{name: "too short", policy: StrictPasswordPolicy, password: "S#1a", wantErr: "at least 8"},
		{name: "no upper", policy: StrictPasswordPolicy, password: "secret#123", wantErr: "uppercase"},
		{name: "no lower", policy: StrictPasswordPolicy, password: "SECRET#123", wantErr: "lowercase"},
		{name: "no digit", policy: StrictPasswordPolicy, password: "Secret#abc", wantErr: "digit"},
		{name: "no special", policy: StrictPasswordPolicy, password: "Secret1234", wantErr: "special"},
		{name: "relaxed policy", policy: PasswordPolicy{Lower: true}, password: "plainpassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPasswordValidator(tt.policy).ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPasswordValidator_ValidateRegister(t *testing.T) {
	v := NewPasswordValidator(StrictPasswordPolicy)

	assert.NoError(t, v.ValidateRegister("editor", "Secret#123"))
	assert.ErrorContains(t, v.ValidateRegister("e", "Secret#123"), "login validation failed")
	assert.ErrorContains(t, v.ValidateRegister("editor", "short"), "password validation failed")
}
