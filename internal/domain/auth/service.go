package auth

import (
	"context"

	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (employee.ProfileResponse, error)
	Login(ctx context.Context, req LoginRequest, sessionReq SessionTrackingRequest) (LoginResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
