package utils

import (
	"net/url"
	"strings"
)

// EscapePathSegment percent-encodes s so it can be used as a single URL
// path segment. Spaces become %20, never '+'.
func EscapePathSegment(s string) string {
	out := url.QueryEscape(s)
	out = strings.ReplaceAll(out, "+", "%20")
	return out
}
