package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
	"github.com/salonpanel/salon-backend-go/internal/pkg/jwt"
)

// AuthRequired turns verified access-token claims into an auth.Session on the request context.
// It must run after jwtauth.Verifier. Any failure, expiry included, answers SESSION_EXPIRED.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrSessionExpired)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrSessionExpired)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			employeeID, _ := claims["employee_id"].(string)
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)
			if employeeID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := auth.WithSession(r.Context(), auth.Session{
				EmployeeID: employeeID,
				Email:      email,
				Role:       employee.Role(role),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
