package revision

import (
	"html/template"
)

// Table is the version history of one record, newest revision first.
type Table struct {
	Title    string   `json:"title"`
	RecordID int      `json:"record_id"`
	TypeID   string   `json:"type"`
	Header   []string `json:"header"`
	Rows     []Row    `json:"rows"`
}

type Row struct {
	RevisionID  int           `json:"revision_id"`
	Current     bool          `json:"current"`
	LinkLabel   string        `json:"link_label"`
	LinkTarget  string        `json:"link_target,omitempty"`
	Author      *AuthorToken  `json:"author,omitempty"`
	LogMessage  template.HTML `json:"log_message,omitempty"`
	Description template.HTML `json:"description"`
	Revert      *Action       `json:"revert,omitempty"`
	Delete      *Action       `json:"delete,omitempty"`
}

// AuthorToken references the account that authored a revision.
type AuthorToken struct {
	AccountID int    `json:"account_id"`
	Name      string `json:"name"`
}

func (a AuthorToken) HTML() template.HTML {
	return template.HTML(`<span class="username">` + template.HTMLEscapeString(a.Name) + `</span>`)
}

type Action struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
