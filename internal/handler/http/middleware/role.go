package middleware

import (
	"net/http"

	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
)

// RequirePatron is the single authorization guard of the dashboard routes.
func RequirePatron(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := auth.SessionFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !session.IsPatron() {
			response.HandleError(w, auth.ErrDashboardAccessDenied)
			return
		}

		next.ServeHTTP(w, r)
	})
}
