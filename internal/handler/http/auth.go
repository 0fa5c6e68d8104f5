package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
	"github.com/salonpanel/salon-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService   jwt.Service
	authService  auth.AuthService
	secureCookie bool
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, secureCookie bool) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:   jwtService,
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq auth.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := a.authService.Register(r.Context(), registerReq)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee registered", "employee_id", profile.ID, "role", profile.Role)
	response.Created(w, "Account created successfully", profile)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sessionTrackReq := auth.SessionTrackingRequest{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
	loginResponse, err := a.authService.Login(r.Context(), loginReq, sessionTrackReq)
	if err != nil {
		slog.Warn("Login rejected", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(loginResponse.RefreshToken, loginResponse.RefreshTokenExpiresIn))
	slog.Info("Employee logged in", "employee_id", loginResponse.Profile.ID)
	response.Created(w, "Logged in successfully", loginResponse)
}

// refreshTokenFromRequest prefers the cookie and falls back to the JSON body.
func refreshTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	if r.ContentLength == 0 {
		return "", nil
	}
	var req auth.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return req.RefreshToken, nil
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := refreshTokenFromRequest(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	if accessToken := jwtauth.TokenFromHeader(r); accessToken != "" {
		a.jwtService.RevokeToken(accessToken)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := refreshTokenFromRequest(r)
	if err != nil {
		slog.Error("Refresh Token decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), auth.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tokenResponse)
}
