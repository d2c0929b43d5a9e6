package auth

import (
	"net/http"
	"strings"
)

// BearerToken extracts the token from an Authorization header value of the form
// "Bearer <token>". The value is split on single spaces and the second field is the
// token; a missing header or a value without a second field yields "".
// The scheme word itself is not checked.
func BearerToken(authz string) string {
	parts := strings.Split(authz, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// SetBearer sets the Authorization header for token. An empty token leaves h untouched.
func SetBearer(h http.Header, token string) {
	if token == "" {
		return
	}
	h.Set("Authorization", "Bearer "+token)
}
