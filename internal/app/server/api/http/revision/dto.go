package revision

import (
	"encoding/json"
	"html/template"
	"time"

	domain "revhistory/internal/domain/revision"
)

// ViewResponse is the body of the revision view route.
type ViewResponse struct {
	Title      string              `json:"title"`
	RecordID   int                 `json:"record_id"`
	RevisionID int                 `json:"revision_id"`
	Current    bool                `json:"current"`
	CreatedAt  time.Time           `json:"created_at"`
	Author     *domain.AuthorToken `json:"author,omitempty"`
	LogMessage template.HTML       `json:"log_message,omitempty"`
	Fields     json.RawMessage     `json:"fields,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
