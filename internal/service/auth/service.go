package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
	"github.com/salonpanel/salon-backend-go/internal/pkg/jwt"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx            database.Transactor
	employeeRepo  employee.EmployeeRepository
	refreshTokens auth.RefreshTokenRepository
	jwtService    jwt.Service
	publisher     events.Publisher
}

func NewAuthService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	refreshTokens auth.RefreshTokenRepository,
	jwtService jwt.Service,
	publisher events.Publisher,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:            tx,
		employeeRepo:  employeeRepo,
		refreshTokens: refreshTokens,
		jwtService:    jwtService,
		publisher:     publisher,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	var created employee.Employee
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		patrons, err := a.employeeRepo.CountByRole(ctx, employee.RolePatron)
		if err != nil {
			return err
		}

		role := employee.RoleMisafir
		if patrons == 0 {
			role = employee.RolePatron
		}

		created, err = a.employeeRepo.Create(ctx, employee.Employee{
			Name:         strings.TrimSpace(req.Name),
			Email:        req.Email,
			Phone:        validator.NormalizePhone(req.Phone),
			PasswordHash: hashedPassword,
			Role:         role,
		})
		return err
	})
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	a.publisher.Publish(ctx, events.TopicEmployees)
	return employee.ToProfile(created), nil
}

// Login implements auth.AuthService. Only the owner may open a dashboard session.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, sessionReq auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := a.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if emp.Role != employee.RolePatron {
		return auth.LoginResponse{}, auth.ErrDashboardAccessDenied
	}

	var tokens auth.TokenResponse
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		tokens.AccessToken, tokens.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokens.RefreshToken, tokens.RefreshTokenExpiresIn, err = a.jwtService.GenerateRefreshToken(emp.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}
		if err := a.refreshTokens.CreateRefreshToken(ctx, emp.ID, tokens.RefreshToken, tokens.RefreshTokenExpiresIn, sessionReq); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		TokenResponse: tokens,
		Profile:       employee.ToProfile(emp),
	}, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	token, err := jwtauth.VerifyToken(a.jwtService.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := token.Get("type")
	if !ok || tokenType != jwt.TokenTypeRefresh {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	employeeID, revoked, err := a.refreshTokens.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, err
	}
	// the role may have changed since login
	if emp.Role != employee.RolePatron {
		return auth.AccessTokenResponse{}, auth.ErrDashboardAccessDenied
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return resp, nil
}

// Logout implements auth.AuthService. Unknown or already revoked tokens are ignored.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return a.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, revoked, err := a.refreshTokens.IsRefreshTokenRevoked(ctx, refreshToken)
		if err != nil {
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if revoked {
			return nil
		}
		return a.refreshTokens.RevokeRefreshToken(ctx, refreshToken)
	})
}
