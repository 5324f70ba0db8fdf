package entity

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

// Link template names.
const (
	LinkCanonical      = "canonical"
	LinkRevision       = "revision"
	LinkRevisionRevert = "revision-revert"
	LinkRevisionDelete = "revision-delete"
	LinkVersionHistory = "version-history"
)

// Capabilities are fixed per type: every record of the type has them or none does.
type Capabilities struct {
	Ownership   bool `json:"ownership"`
	RevisionLog bool `json:"revision_log"`
	Bundles     bool `json:"bundles"`
}

// Type describes a record type.
type Type struct {
	ID           string            `json:"id"`
	Label        string            `json:"label"`
	Bundles      []string          `json:"bundles,omitempty"`
	Capabilities Capabilities      `json:"capabilities"`
	Links        map[string]string `json:"links,omitempty"`
}

func (t Type) HasLinkTemplate(name string) bool {
	_, ok := t.Links[name]
	return ok
}

func (t Type) LinkTemplate(name string) (string, bool) {
	tmpl, ok := t.Links[name]
	return tmpl, ok
}

// RecordParameter is the path variable naming the record in link templates.
func (t Type) RecordParameter() string {
	return t.ID
}

// RevisionParameter is the path variable naming the revision in link templates.
func (t Type) RevisionParameter() string {
	return t.ID + "_revision"
}

// HasBundle reports whether bundle is declared for the type.
func (t Type) HasBundle(bundle string) bool {
	return slices.Contains(t.Bundles, bundle)
}

var (
	templateExpr = regexp.MustCompile(`\{([^}]*)\}`)
	plainVarname = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Validate checks the id and that every link template parses into path
// variables the router can bind.
func (t Type) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidType)
	}
	if strings.ContainsAny(t.ID, " ./{}") {
		return fmt.Errorf("%w: id %q", ErrInvalidType, t.ID)
	}
	for name, tmpl := range t.Links {
		if err := t.validateLink(name, tmpl); err != nil {
			return fmt.Errorf("%w: %s %s: %v", ErrMalformedTemplate, t.ID, name, err)
		}
	}
	return nil
}

func (t Type) validateLink(name, tmpl string) error {
	parsed, err := uritemplate.New(tmpl)
	if err != nil {
		return err
	}
	for _, m := range templateExpr.FindAllStringSubmatch(tmpl, -1) {
		if !plainVarname.MatchString(m[1]) {
			return fmt.Errorf("unsupported expression {%s}", m[1])
		}
	}

	vars := parsed.Varnames()
	for _, v := range vars {
		if v != t.RecordParameter() && v != t.RevisionParameter() {
			return fmt.Errorf("unknown variable %q", v)
		}
	}
	hasRecord := slices.Contains(vars, t.RecordParameter())
	hasRevision := slices.Contains(vars, t.RevisionParameter())

	switch name {
	case LinkRevision, LinkRevisionRevert, LinkRevisionDelete:
		if !hasRecord || !hasRevision {
			return fmt.Errorf("must bind %q and %q", t.RecordParameter(), t.RevisionParameter())
		}
	case LinkVersionHistory:
		if !hasRecord {
			return fmt.Errorf("must bind %q", t.RecordParameter())
		}
		if hasRevision {
			return fmt.Errorf("must not bind %q", t.RevisionParameter())
		}
	case LinkCanonical:
		if hasRevision {
			return fmt.Errorf("must not bind %q", t.RevisionParameter())
		}
	}

	if (name == LinkRevision || name == LinkVersionHistory) && !strings.HasPrefix(tmpl, "/") {
		return fmt.Errorf("path %q must start with /", tmpl)
	}
	return nil
}
