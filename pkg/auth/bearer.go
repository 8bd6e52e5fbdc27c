// Package auth provides bearer-credential plumbing for the HTTP boundary.
//
// Customers are identified by an opaque bearer token that the external
// customer service resolves per-request; there is no server-side session
// state. Handlers pull the raw token with BearerToken and pass it to the
// application layer, which decides whether an anonymous request is allowed.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const clientIDKey contextKey = "client_id"

// ErrClientIDNotFound is returned when no client id exists in the request context.
var ErrClientIDNotFound = errors.New("client_id not found in context")

// BearerToken extracts the credential from the Authorization header.
// Returns "" when the header is absent or not a Bearer scheme, which is an
// anonymous request, not an error.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// ClientIDFromCtx extracts a resolved customer id from the request context.
// Returns ErrClientIDNotFound for anonymous requests.
func ClientIDFromCtx(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(clientIDKey).(int64)
	if !ok || id == 0 {
		return 0, ErrClientIDNotFound
	}
	return id, nil
}

// WithClientID returns a new context with the given customer id attached.
func WithClientID(ctx context.Context, clientID int64) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}
