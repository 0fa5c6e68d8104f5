package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/pkg/jwt"
)

// TokenJobs keeps the refresh token table and the in-memory revocation list bounded.
type TokenJobs struct {
	refreshTokens auth.RefreshTokenRepository
	jwtService    jwt.Service
	retention     time.Duration
	revokedMaxAge time.Duration
	now           func() time.Time
}

// NewTokenJobs creates token cron jobs. Refresh tokens expired or revoked longer than
// retention ago are deleted; revoked access tokens older than revokedMaxAge are forgotten.
func NewTokenJobs(refreshTokens auth.RefreshTokenRepository, jwtService jwt.Service, retention, revokedMaxAge time.Duration) *TokenJobs {
	return &TokenJobs{
		refreshTokens: refreshTokens,
		jwtService:    jwtService,
		retention:     retention,
		revokedMaxAge: revokedMaxAge,
		now:           time.Now,
	}
}

// RegisterJobs registers all token-related cron jobs
func (j *TokenJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.Every("refresh-token-cleanup", time.Hour, j.CleanupRefreshTokens)
	scheduler.Every("revoked-access-token-prune", 15*time.Minute, j.PruneRevokedAccessTokens)
}

// CleanupRefreshTokens deletes refresh tokens past the retention window
func (j *TokenJobs) CleanupRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokens.DeleteExpired(ctx, j.now().Add(-j.retention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Info("Refresh tokens cleaned up", "deleted", deleted)
	}
	return nil
}

// PruneRevokedAccessTokens drops revoked access tokens that have expired anyway
func (j *TokenJobs) PruneRevokedAccessTokens(ctx context.Context) error {
	if pruned := j.jwtService.PruneRevoked(j.revokedMaxAge); pruned > 0 {
		slog.Debug("Revoked access tokens pruned", "pruned", pruned)
	}
	return nil
}
