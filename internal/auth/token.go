package auth

import (
	"net/http"
	"strings"
)

// ExtractAccessToken pulls the access token from the request, preferring
// the cookie a browser carries over a Bearer header.
func ExtractAccessToken(r *http.Request) string {
	if c, err := r.Cookie("access_token"); err == nil && c.Value != "" {
		return c.Value
	}

	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return token
	}

	return ""
}
