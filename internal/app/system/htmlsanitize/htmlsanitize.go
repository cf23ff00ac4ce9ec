// Package htmlsanitize strips markup from user-supplied text before it is
// stored and later rendered by clients.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag. Script and style elements lose their content
// as well.
var strict = bluemonday.StrictPolicy()

// PlainText returns s with all HTML removed. Entities produced by the
// sanitizer are unescaped again, so "Food & books" is stored as typed.
func PlainText[S ~string](s S) S {
	if s == "" {
		return ""
	}
	return S(strings.TrimSpace(html.UnescapeString(strict.Sanitize(string(s)))))
}

// PlainTextPtr applies PlainText to a non-nil pointer target.
func PlainTextPtr[S ~string](s *S) *S {
	if s == nil {
		return nil
	}
	out := PlainText(*s)
	return &out
}
