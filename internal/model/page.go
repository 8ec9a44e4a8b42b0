package model

import "strings"

// DefaultLimit is the page size when none is given.
const DefaultLimit = 10

// MaxLimit caps the page size; larger requests are clamped.
const MaxLimit = 100

// Page is a limit/offset window over an insertion-ordered result set.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DefaultPage returns the first page with the default size.
func DefaultPage() Page {
	return Page{Limit: DefaultLimit}
}

// Normalize validates the page and clamps Limit to MaxLimit.
func (p Page) Normalize() (Page, error) {
	if p.Limit < 1 {
		return p, &ValidationError{Message: "invalid input", Fields: map[string]string{"limit": "must be no less than 1"}}
	}
	if p.Offset < 0 {
		return p, &ValidationError{Message: "invalid input", Fields: map[string]string{"offset": "must be no less than 0"}}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p, nil
}

// Search is an optional case-insensitive substring filter.
type Search struct {
	Term string `json:"search"`
}

// Pattern returns a LIKE pattern matching Term as a literal substring,
// escaped with a backslash, and whether a filter applies at all.
func (s Search) Pattern() (string, bool) {
	term := strings.TrimSpace(s.Term)
	if term == "" {
		return "", false
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(term)) + "%", true
}
