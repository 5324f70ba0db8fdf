package account

import "revhistory/internal/domain/account"

type RegisterRequest struct {
	account.Credentials
	DisplayName string `json:"display_name,omitempty" maxLength:"64" doc:"Name shown as revision author"`
}

type registerInput struct {
	Body RegisterRequest
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"account_id"`
	Status string `json:"status"`
}

type loginInput struct {
	Body account.Credentials
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

type logoutInput struct{}

type logoutOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status"`
}
