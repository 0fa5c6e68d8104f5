package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrDashboardAccessDenied = errors.New("only the owner may access the dashboard")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrSessionExpired        = errors.New("session expired")
	ErrRefreshTokenRevoked   = errors.New("refresh token has been revoked")
	ErrNoSession             = errors.New("no session in context")
	ErrTooManyAttempts       = errors.New("too many login attempts")
)
