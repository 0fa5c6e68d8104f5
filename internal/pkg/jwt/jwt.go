package jwt

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeSSE     = "sse"
)

type Service interface {
	GenerateAccessToken(employeeID string, email string, role employee.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(employeeID string) (token string, expiresAt int64, err error)
	GenerateSSEToken(employeeID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (employeeID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
	// PruneRevoked forgets revoked access tokens older than maxAge and returns how many were dropped.
	PruneRevoked(maxAge time.Duration) int
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	secureCookie               bool
	tokenAuth                  *jwtauth.JWTAuth
	revokedTokens              map[string]int64
	mu                         sync.RWMutex
	now                        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string, secureCookie bool) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		secureCookie:               secureCookie,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:              make(map[string]int64),
		now:                        time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(employeeID string, email string, role employee.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"email":       email,
		"role":        string(role),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(employeeID string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"exp":         expiresAt,
		"type":        TokenTypeRefresh,
		// two refresh tokens issued in the same second must still hash differently
		"jti": uuid.NewString(),
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = j.now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

func (j *JWTService) PruneRevoked(maxAge time.Duration) int {
	cutoff := j.now().Add(-maxAge).Unix()

	j.mu.Lock()
	defer j.mu.Unlock()

	pruned := 0
	for token, revokedAt := range j.revokedTokens {
		if revokedAt < cutoff {
			delete(j.revokedTokens, token)
			pruned++
		}
	}
	return pruned
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(employeeID string) (token string, expiresIn int, err error) {
	expiresIn = 300
	expiresAt := j.now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"type":        TokenTypeSSE,
		"exp":         expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns the employee ID
func (j *JWTService) ValidateSSEToken(tokenString string) (employeeID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeSSE {
		return "", jwt.ErrInvalidJWT()
	}

	idVal, ok := token.Get("employee_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	employeeID, ok = idVal.(string)
	if !ok || employeeID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return employeeID, nil
}
