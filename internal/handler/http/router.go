package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/middleware"
	"github.com/salonpanel/salon-backend-go/internal/pkg/jwt"
)

type RouterOptions struct {
	AppName      string
	Version      string
	Env          string
	FrontendURL  string
	LoginLimiter *middleware.RateLimiter
}

type Handlers struct {
	Auth        AuthHandler
	Employee    EmployeeHandler
	Appointment AppointmentHandler
	Customer    CustomerHandler
	Catalog     CatalogHandler
	Transaction TransactionHandler
	Ledger      LedgerHandler
	Payroll     PayrollHandler
	Dashboard   DashboardHandler
	Events      EventsHandler
}

// NewLogger returns the JSON logger shared by request logging and the rest of the app.
func NewLogger(opts RouterOptions) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)
}

func NewRouter(JWTService jwt.Service, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logger := NewLogger(opts)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Group(func(r chi.Router) {
				if opts.LoginLimiter != nil {
					r.Use(middleware.RateLimit(opts.LoginLimiter))
				}
				r.Post("/login", h.Auth.Login)
			})
		})

		// Authenticated with a short-lived token in the query string
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.Employee.GetProfile)
				r.Put("/", h.Employee.UpdateProfile)
				r.Put("/password", h.Employee.ChangePassword)
			})
			r.Post("/advance-requests/mine", h.Payroll.CreateMyAdvanceRequest)

			// Owner only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePatron)

				r.Get("/dashboard", h.Dashboard.GetDashboard)
				r.Post("/events/token", h.Events.GetSSEToken)

				r.Route("/appointments", func(r chi.Router) {
					r.Get("/", h.Appointment.List)
					r.Post("/", h.Appointment.Create)
					r.Get("/overview", h.Appointment.Overview)
					r.Get("/{id}", h.Appointment.Get)
					r.Put("/{id}", h.Appointment.Update)
					r.Patch("/{id}/status", h.Appointment.UpdateStatus)
				})

				r.Route("/customers", func(r chi.Router) {
					r.Get("/", h.Customer.List)
					r.Post("/", h.Customer.Create)
					r.Delete("/{id}", h.Customer.Delete)
				})

				r.Route("/services", func(r chi.Router) {
					r.Get("/", h.Catalog.List)
					r.Post("/", h.Catalog.Create)
					r.Delete("/{id}", h.Catalog.Delete)
					r.Patch("/{id}/price", h.Catalog.UpdatePrice)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Patch("/{id}/role", h.Employee.UpdateRole)
					r.Patch("/{id}/financials", h.Employee.UpdateFinancials)
				})

				r.Route("/transactions", func(r chi.Router) {
					r.Get("/", h.Transaction.List)
					r.Post("/", h.Transaction.Create)
					r.Post("/{id}/cancel", h.Transaction.Cancel)
				})

				r.Route("/ledger", func(r chi.Router) {
					r.Get("/monthly", h.Ledger.Monthly)
					r.Get("/transactions", h.Ledger.Transactions)
					r.Get("/salaries", h.Ledger.Salaries)
				})

				r.Route("/salary-records", func(r chi.Router) {
					r.Get("/", h.Payroll.ListSalaryRecords)
					r.Post("/", h.Payroll.CreateSalaryRecord)
					r.Post("/{id}/approve", h.Payroll.ApproveSalaryRecord)
				})

				// flat so they share a tree with /advance-requests/mine
				r.Get("/advance-requests", h.Payroll.ListAdvanceRequests)
				r.Get("/advance-requests/pending-count", h.Payroll.PendingAdvanceCount)
				r.Post("/advance-requests/{id}/approve", h.Payroll.ApproveAdvanceRequest)
				r.Post("/advance-requests/{id}/reject", h.Payroll.RejectAdvanceRequest)
			})
		})
	})
	return r
}
