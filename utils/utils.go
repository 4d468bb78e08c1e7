package utils

import (
	"net/http"

	"auris/globals"
)

// GetSessionIDFromRequest returns the session id placed in the request
// context by the session middleware, or "" when absent.
func GetSessionIDFromRequest(r *http.Request) string {
	sid, ok := r.Context().Value(globals.SessionIDKey).(string)
	if !ok || sid == "" {
		return ""
	}
	return sid
}
