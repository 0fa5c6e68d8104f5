package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository persists hashed refresh tokens for revocation.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, employeeID string, token string, expiresAt int64, sessionReq SessionTrackingRequest) error
	// IsRefreshTokenRevoked reports the owning employee and whether the token is revoked or expired.
	IsRefreshTokenRevoked(ctx context.Context, token string) (employeeID string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
	// DeleteExpired removes tokens that expired or were revoked before cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
