package httpx

import (
	"context"
	"net/http"
	"sync"
)

type contextKey string

const (
	usernameKey  contextKey = "username"
	requestIDKey contextKey = "requestID"
)

// usernameCell is a mutable slot shared along the middleware chain. The
// access-log middleware installs an empty one on the way in; the auth
// guard, which runs deeper in the chain on a derived request, fills it
// in, so the log line written on the way out sees the authenticated
// username.
type usernameCell struct {
	mu sync.Mutex
	v  string
}

func (c *usernameCell) set(v string) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *usernameCell) get() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

// ContextWithUsernameScope installs an empty username slot for handlers
// and guards deeper in the chain to fill in.
func ContextWithUsernameScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, usernameKey, &usernameCell{})
}

// RequestWithUsername records the authenticated username. It reuses the
// surrounding slot when one exists; otherwise it derives a new request
// carrying its own.
func RequestWithUsername(r *http.Request, username string) *http.Request {
	if cell, ok := r.Context().Value(usernameKey).(*usernameCell); ok {
		cell.set(username)
		return r
	}
	cell := &usernameCell{v: username}
	return r.WithContext(context.WithValue(r.Context(), usernameKey, cell))
}

// UsernameFrom retrieves the authenticated username, or "" before the
// auth guard has run.
func UsernameFrom(r *http.Request) string {
	if cell, ok := r.Context().Value(usernameKey).(*usernameCell); ok {
		return cell.get()
	}
	return ""
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
