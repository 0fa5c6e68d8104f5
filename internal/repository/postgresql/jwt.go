package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
)

type jwtRepositoryImpl struct {
	db *database.DB
}

// NewJWTRepository creates a new refresh token store.
func NewJWTRepository(db *database.DB) auth.RefreshTokenRepository {
	return &jwtRepositoryImpl{db: db}
}

// hashToken hashes the input string using SHA256 and encodes the result in base64.
func (j *jwtRepositoryImpl) hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (j *jwtRepositoryImpl) CreateRefreshToken(ctx context.Context, employeeID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	q := GetQuerier(ctx, j.db)
	query := `
		INSERT INTO refresh_tokens (employee_id, token_hash, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5)
	`
	tokenHash := j.hashToken(token)
	_, err := q.Exec(ctx, query, employeeID, tokenHash, time.Unix(expiresAt, 0).UTC(), sessionReq.UserAgent, sessionReq.IPAddress)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (j *jwtRepositoryImpl) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT employee_id, revoked_at, expires_at
		FROM refresh_tokens
		WHERE token_hash = $1
		ORDER BY expires_at DESC
		LIMIT 1
	`
	tokenHash := j.hashToken(token)

	var employeeID string
	var revokedAt *time.Time
	var expiresAt time.Time

	err := q.QueryRow(ctx, query, tokenHash).Scan(&employeeID, &revokedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", true, nil
		}
		return "", false, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if revokedAt != nil || !expiresAt.After(time.Now()) {
		return employeeID, true, nil
	}
	return employeeID, false, nil
}

func (j *jwtRepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	q := GetQuerier(ctx, j.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	_, err := q.Exec(ctx, query, j.hashToken(token))
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (j *jwtRepositoryImpl) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		DELETE FROM refresh_tokens
		WHERE expires_at < $1 OR (revoked_at IS NOT NULL AND revoked_at < $1)
	`
	tag, err := q.Exec(ctx, query, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
