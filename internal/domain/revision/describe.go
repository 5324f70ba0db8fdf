package revision

import (
	"fmt"
	"html/template"
	"strings"
)

var (
	dateByAuthor = template.Must(template.New("date_by_author").Parse(
		`{{.Date}} by {{.Username}}{{if .Message}}<p class="revision-log">{{.Message}}</p>{{end}}`))
	dateOnly = template.Must(template.New("date").Parse(
		`{{.Date}}{{if .Message}}<p class="revision-log">{{.Message}}</p>{{end}}`))
)

type descriptionContext struct {
	Date     template.HTML
	Username template.HTML
	Message  template.HTML
}

// describe composes the description cell. The template is chosen only by
// whether an author is shown.
func describe(link template.HTML, author *AuthorToken, message template.HTML) (template.HTML, error) {
	data := descriptionContext{Date: link, Message: message}
	tmpl := dateOnly
	if author != nil {
		data.Username = author.HTML()
		tmpl = dateByAuthor
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render description: %w", err)
	}
	return template.HTML(b.String()), nil
}
