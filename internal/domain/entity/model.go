package entity

import (
	"encoding/json"
	"time"
)

// Record is a live entity. Its field values are those of the current revision.
type Record struct {
	ID                int       `json:"id"`
	TypeID            string    `json:"type"`
	Bundle            string    `json:"bundle,omitempty"`
	Label             string    `json:"label"`
	OwnerID           int       `json:"owner_id,omitempty"`
	CurrentRevisionID int       `json:"current_revision_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// Revision is an immutable snapshot of a record.
type Revision struct {
	ID         int             `json:"id"`
	RecordID   int             `json:"record_id"`
	CreatedAt  time.Time       `json:"created_at"`
	Author     *Account        `json:"author,omitempty"`
	LogMessage string          `json:"log_message,omitempty"`
	Fields     json.RawMessage `json:"fields,omitempty"`
}

type Account struct {
	ID          int    `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

// Anonymous is the account used for requests without a session.
var Anonymous = Account{ID: 0, Login: "anonymous", DisplayName: "Anonymous"}

// Name returns the display name, falling back to the login.
func (a Account) Name() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Login
}

func (a Account) IsAnonymous() bool {
	return a.ID == 0
}
