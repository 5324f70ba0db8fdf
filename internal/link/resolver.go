// Package link expands entity link templates into URLs and hyperlinks.
package link

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"revhistory/internal/domain/entity"

	"github.com/yosida95/uritemplate/v3"
)

// Resolver expands link templates. Templates use the record type id as the
// record variable and "<type>_revision" as the revision variable, e.g.
// /node/{node}/revisions/{node_revision}/view.
type Resolver struct {
	baseURL string
}

func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: baseURL}
}

// URL builds the URL for the named template. rev may be nil for templates
// that do not reference a revision.
func (r *Resolver) URL(t entity.Type, name string, rec entity.Record, rev *entity.Revision) (string, error) {
	raw, ok := t.LinkTemplate(name)
	if !ok {
		return "", fmt.Errorf("%w: %s has no %q template", entity.ErrMalformedTemplate, t.ID, name)
	}

	tmpl, err := uritemplate.New(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %v", entity.ErrMalformedTemplate, t.ID, name, err)
	}

	values := uritemplate.Values{}
	values.Set(t.RecordParameter(), uritemplate.String(strconv.Itoa(rec.ID)))
	if rev != nil {
		values.Set(t.RevisionParameter(), uritemplate.String(strconv.Itoa(rev.ID)))
	}

	for _, name := range tmpl.Varnames() {
		if _, bound := values[name]; !bound {
			return "", fmt.Errorf("%w: %s: unbound variable %q", entity.ErrMalformedTemplate, t.ID, name)
		}
	}

	expanded, err := tmpl.Expand(values)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", entity.ErrMalformedTemplate, t.ID, err)
	}

	return r.baseURL + expanded, nil
}

var anchor = template.Must(template.New("link").Parse(`<a href="{{.URL}}">{{.Label}}</a>`))

// Link renders an escaped anchor element.
func (r *Resolver) Link(label, url string) (template.HTML, error) {
	var buf strings.Builder
	err := anchor.Execute(&buf, struct {
		URL   string
		Label string
	}{URL: url, Label: label})
	if err != nil {
		return "", fmt.Errorf("render link: %w", err)
	}
	return template.HTML(buf.String()), nil
}
