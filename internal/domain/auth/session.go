package auth

import (
	"context"

	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
)

// Session is the authenticated identity of a request. It is built once by
// the auth middleware and read by handlers and services from the context.
type Session struct {
	EmployeeID string
	Email      string
	Role       employee.Role
}

func (s Session) IsPatron() bool {
	return s.Role == employee.RolePatron
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.EmployeeID == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}
