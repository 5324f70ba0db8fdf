package account

import (
	"time"

	"revhistory/internal/domain/entity"
)

type Account struct {
	ID           int
	Login        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// Entity strips credentials for use as a revision author or request viewer.
func (a Account) Entity() entity.Account {
	return entity.Account{ID: a.ID, Login: a.Login, DisplayName: a.DisplayName}
}

type Credentials struct {
	Login    string `json:"login" minLength:"3" maxLength:"32" doc:"Account login"`
	Password string `json:"password" minLength:"8" doc:"Account password"`
}
