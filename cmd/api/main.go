package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/config"
	appHTTP "github.com/salonpanel/salon-backend-go/internal/handler/http"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/middleware"
	"github.com/salonpanel/salon-backend-go/internal/pkg/cron"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
	"github.com/salonpanel/salon-backend-go/internal/pkg/jwt"
	"github.com/salonpanel/salon-backend-go/internal/pkg/sse"
	"github.com/salonpanel/salon-backend-go/internal/repository/postgresql"
	appointmentService "github.com/salonpanel/salon-backend-go/internal/service/appointment"
	serviceAuth "github.com/salonpanel/salon-backend-go/internal/service/auth"
	catalogService "github.com/salonpanel/salon-backend-go/internal/service/catalog"
	customerService "github.com/salonpanel/salon-backend-go/internal/service/customer"
	dashboardService "github.com/salonpanel/salon-backend-go/internal/service/dashboard"
	employeeService "github.com/salonpanel/salon-backend-go/internal/service/employee"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
	ledgerService "github.com/salonpanel/salon-backend-go/internal/service/ledger"
	payrollService "github.com/salonpanel/salon-backend-go/internal/service/payroll"
	transactionService "github.com/salonpanel/salon-backend-go/internal/service/transaction"
	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	routerOpts := appHTTP.RouterOptions{
		AppName:     cfg.App.Name,
		Version:     cfg.App.Version,
		Env:         cfg.App.Env,
		FrontendURL: cfg.App.FrontendURL,
	}
	slog.SetDefault(appHTTP.NewLogger(routerOpts))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx, cfg.Database.MigrationsPath); err != nil {
		return err
	}

	// Repositories
	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	customerRepo := postgresql.NewCustomerRepository(db)
	serviceRepo := postgresql.NewServiceRepository(db)
	appointmentRepo := postgresql.NewAppointmentRepository(db)
	transactionRepo := postgresql.NewTransactionRepository(db)
	salaryRecordRepo := postgresql.NewSalaryRecordRepository(db)
	advanceRequestRepo := postgresql.NewAdvanceRequestRepository(db)
	refreshTokenRepo := postgresql.NewJWTRepository(db)

	// Change events
	hub := sse.NewHub()
	publisher := events.NewHubPublisher(hub, appointmentRepo, advanceRequestRepo)

	// Services
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())
	authService := serviceAuth.NewAuthService(tx, employeeRepo, refreshTokenRepo, JWTService, publisher)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, publisher)
	customerSvc := customerService.NewCustomerService(customerRepo, publisher)
	catalogSvc := catalogService.NewCatalogService(serviceRepo, publisher)
	appointmentSvc := appointmentService.NewAppointmentService(
		tx,
		appointmentRepo,
		serviceRepo,
		employeeRepo,
		customerRepo,
		transactionRepo,
		publisher,
		loc,
		time.Now,
	)
	transactionSvc := transactionService.NewTransactionService(transactionRepo, employeeRepo, publisher, time.Now)
	ledgerSvc := ledgerService.NewLedgerService(transactionRepo, salaryRecordRepo, employeeRepo, loc, time.Now)
	payrollSvc := payrollService.NewPayrollService(tx, salaryRecordRepo, advanceRequestRepo, employeeRepo, publisher, time.Now)
	dashboardSvc := dashboardService.NewDashboardService(appointmentSvc, ledgerSvc, customerRepo, advanceRequestRepo, time.Now)

	// Background jobs
	loginLimiter := middleware.NewRateLimiter(cfg.Login.RateLimitRPS, cfg.Login.RateLimitBurst)
	scheduler := cron.NewScheduler(slog.Default())
	cron.NewTokenJobs(refreshTokenRepo, JWTService, 7*24*time.Hour, 24*time.Hour).RegisterJobs(scheduler)
	scheduler.Add(cron.Job{
		Name:     "login-limiter-cleanup",
		Interval: 5 * time.Minute,
		Delay:    5 * time.Minute,
		Fn: func(ctx context.Context) error {
			if dropped := loginLimiter.Cleanup(10 * time.Minute); dropped > 0 {
				slog.Debug("Login limiter entries dropped", "count", dropped)
			}
			return nil
		},
	})
	scheduler.Start(ctx)
	defer scheduler.Stop()

	routerOpts.LoginLimiter = loginLimiter
	router := appHTTP.NewRouter(JWTService, routerOpts, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(JWTService, authService, cfg.IsProduction()),
		Employee:    appHTTP.NewEmployeeHandler(employeeSvc),
		Appointment: appHTTP.NewAppointmentHandler(appointmentSvc, loc),
		Customer:    appHTTP.NewCustomerHandler(customerSvc),
		Catalog:     appHTTP.NewCatalogHandler(catalogSvc),
		Transaction: appHTTP.NewTransactionHandler(transactionSvc, loc),
		Ledger:      appHTTP.NewLedgerHandler(ledgerSvc),
		Payroll:     appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:   appHTTP.NewDashboardHandler(dashboardSvc),
		Events:      appHTTP.NewEventsHandler(hub, JWTService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
