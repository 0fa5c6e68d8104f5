package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService("test-secret", "15m", "168h", false).(*JWTService)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService()

	tokenString, expiresAt, err := svc.GenerateAccessToken("emp-1", "owner@salon.test", employee.RolePatron)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	id, _ := token.Get("employee_id")
	role, _ := token.Get("role")
	typ, _ := token.Get("type")
	assert.Equal(t, "emp-1", id)
	assert.Equal(t, "patron", role)
	assert.Equal(t, TokenTypeAccess, typ)
}

func TestGenerateRefreshToken_Unique(t *testing.T) {
	svc := newTestService()

	a, _, err := svc.GenerateRefreshToken("emp-1")
	require.NoError(t, err)
	b, _, err := svc.GenerateRefreshToken("emp-1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := newTestService()

	tokenString, expiresIn, err := svc.GenerateSSEToken("emp-7")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	id, err := svc.ValidateSSEToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "emp-7", id)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	access, _, err := svc.GenerateAccessToken("emp-1", "a@b.test", employee.RolePatron)
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}

func TestValidateSSEToken_RejectsExpired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tokenString, _, err := svc.GenerateSSEToken("emp-1")
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(tokenString)
	assert.Error(t, err)
}

func TestRevokeAndPrune(t *testing.T) {
	svc := newTestService()
	now := time.Now()
	svc.now = func() time.Time { return now }

	svc.RevokeToken("old")
	assert.True(t, svc.IsTokenRevoked("old"))

	now = now.Add(2 * time.Hour)
	svc.RevokeToken("fresh")

	pruned := svc.PruneRevoked(time.Hour)
	assert.Equal(t, 1, pruned)
	assert.False(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("fresh"))
}
