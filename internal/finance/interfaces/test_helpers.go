package interfaces

import (
	"context"
	"net/http"
)

// withUser mimics the session middleware by injecting a user ID into the
// request context.
func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), "userID", userID))
}
