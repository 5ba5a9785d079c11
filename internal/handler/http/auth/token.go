package auth

import (
	"net/http"
	"strings"
)

// ExtractToken reads the bearer credential from the Authorization header.
//
// It returns the token with surrounding whitespace trimmed, or the empty
// string unless the header is exactly a Bearer scheme carrying a non-empty
// (post-trim) token. Other schemes (Basic, Digest, ...), a missing header,
// and a bare "Bearer" all yield the empty string. No side effects.
func ExtractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	scheme, rest, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return ""
	}

	return strings.TrimSpace(rest)
}
