// Package routing derives the revision routes of record types.
package routing

import "strings"

// Handler names the controller a route dispatches to.
type Handler string

const (
	HandlerViewRevision     Handler = "revision.view"
	HandlerRevisionOverview Handler = "revision.overview"
)

// RequirementRevisionAccess is checked against the converted record or revision
// before dispatch. Its value has the form "<type>.<operation>".
const RequirementRevisionAccess = "_entity_access_revision"

// Parameter converter prefixes.
const (
	ConverterEntity         = "entity:"
	ConverterEntityRevision = "entity_revision:"
)

// ParamBinding tells the router how to resolve a path parameter.
type ParamBinding struct {
	Type string `json:"type"`
}

// Revision reports whether the parameter loads a pinned revision rather than
// the live record.
func (p ParamBinding) Revision() bool {
	return strings.HasPrefix(p.Type, ConverterEntityRevision)
}

// EntityTypeID returns the type the converter loads.
func (p ParamBinding) EntityTypeID() string {
	if p.Revision() {
		return strings.TrimPrefix(p.Type, ConverterEntityRevision)
	}
	return strings.TrimPrefix(p.Type, ConverterEntity)
}

type Options struct {
	// EntityTypeID names the path parameter holding the record whose history is listed.
	EntityTypeID string                  `json:"entity_type_id,omitempty"`
	Parameters   map[string]ParamBinding `json:"parameters"`
}

type Route struct {
	Name            string            `json:"name"`
	Path            string            `json:"path"`
	Handler         Handler           `json:"handler"`
	Title           string            `json:"title,omitempty"`
	TitleFromRecord bool              `json:"title_from_record,omitempty"`
	Requirements    map[string]string `json:"requirements"`
	Options         Options           `json:"options"`
}

// AccessRequirement returns the "<type>.<operation>" revision access requirement.
func (r Route) AccessRequirement() (string, bool) {
	req, ok := r.Requirements[RequirementRevisionAccess]
	return req, ok
}

// RecordParameter returns the path parameter that identifies the record
// whose history the route lists.
func (r Route) RecordParameter() (string, bool) {
	if r.Options.EntityTypeID == "" {
		return "", false
	}
	binding, ok := r.Options.Parameters[r.Options.EntityTypeID]
	if !ok || binding.Revision() || binding.EntityTypeID() != r.Options.EntityTypeID {
		return "", false
	}
	return r.Options.EntityTypeID, true
}
