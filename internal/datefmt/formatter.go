package datefmt

import (
	"fmt"
	"time"
)

// Formatter renders revision timestamps in a fixed layout and time zone.
type Formatter struct {
	shortLayout string
	loc         *time.Location
}

func New(shortLayout, timezone string) (*Formatter, error) {
	if shortLayout == "" {
		return nil, fmt.Errorf("empty short date layout")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Formatter{shortLayout: shortLayout, loc: loc}, nil
}

func (f *Formatter) FormatShort(t time.Time) string {
	return t.In(f.loc).Format(f.shortLayout)
}
