package revision

import (
	"html/template"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
	"github.com/microcosm-cc/bluemonday"
)

// AllowedTags are the formatting tags kept in revision log messages.
var AllowedTags = []string{
	"a", "em", "strong", "cite", "blockquote", "code",
	"ul", "ol", "li", "dl", "dt", "dd", "p", "br",
}

// Sanitizer filters revision log messages down to AllowedTags.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()

	return &Sanitizer{policy: p}
}

// Sanitize returns the filtered message and whether the raw input looked like
// an XSS attempt.
func (s *Sanitizer) Sanitize(msg string) (template.HTML, bool) {
	if strings.TrimSpace(msg) == "" {
		return "", false
	}
	suspicious := libinjection.IsXSS(msg)
	clean := s.policy.Sanitize(msg)
	if strings.TrimSpace(clean) == "" {
		return "", suspicious
	}
	return template.HTML(clean), suspicious
}
