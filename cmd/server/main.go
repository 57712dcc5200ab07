package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/11Jagan/Expense-Tracker/internal/config"
	"github.com/11Jagan/Expense-Tracker/internal/database"
	"github.com/11Jagan/Expense-Tracker/internal/events"
	"github.com/11Jagan/Expense-Tracker/internal/handlers"
	"github.com/11Jagan/Expense-Tracker/internal/logging"
	"github.com/11Jagan/Expense-Tracker/internal/middleware"
	"github.com/11Jagan/Expense-Tracker/internal/repositories"
	"github.com/11Jagan/Expense-Tracker/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
)

const tokenCleanupInterval = time.Hour

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", logging.FieldError, err)
		os.Exit(1)
	}
}

func run() error {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, JSON: cfg.IsProduction()})
	slog.SetDefault(logger)
	appLog := logging.WithComponent(logger, logging.ComponentApp)

	db, err := database.Initialize(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo := repositories.NewUserRepository(db.DB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)
	expenseRepo := repositories.NewExpenseRepository(db.DB)
	incomeRepo := repositories.NewIncomeRepository(db.DB)
	budgetRepo := repositories.NewBudgetRepository(db.DB)

	metrics := services.NewPrometheusMetrics()
	tokenService := services.NewTokenService(&cfg.JWT)
	thresholds := aggregation.Thresholds{
		OnTrackBelow:    cfg.Budget.OnTrackBelow,
		ApproachingUpTo: cfg.Budget.ApproachingUpTo,
		AlmostOverUpTo:  cfg.Budget.AlmostOverUpTo,
	}

	recordsLog := logging.WithComponent(logger, logging.ComponentRecords)
	reportsLog := logging.WithComponent(logger, logging.ComponentReports)

	authService := services.NewAuthService(
		userRepo,
		refreshTokenRepo,
		blacklistedTokenRepo,
		services.NewPasswordService(cfg.Security),
		tokenService,
		metrics,
		logging.WithComponent(logger, logging.ComponentAuth),
	)
	summaryService := services.NewSummaryService(expenseRepo, incomeRepo, userRepo, metrics, reportsLog, nil)

	h := handlers.Handlers{
		Auth: handlers.NewAuthHandler(authService),
		Expense: handlers.NewExpenseHandler(
			services.NewExpenseService(expenseRepo, publisher, metrics, recordsLog, nil),
			summaryService,
		),
		Income: handlers.NewIncomeHandler(
			services.NewIncomeService(incomeRepo, publisher, metrics, recordsLog, nil),
			summaryService,
		),
		Budget: handlers.NewBudgetHandler(services.NewBudgetService(
			budgetRepo, expenseRepo, thresholds, metrics,
			logging.WithComponent(logger, logging.ComponentBudgets), nil,
		)),
		Report: handlers.NewReportHandler(services.NewReportService(expenseRepo, incomeRepo, metrics, reportsLog, nil)),
		Dev: handlers.NewDevHandler(services.NewDemoDataService(
			expenseRepo, incomeRepo, cfg.IsDevelopment(), metrics,
			logging.WithComponent(logger, logging.ComponentDev), nil,
		)),
		Health: handlers.NewHealthCheckHandler(db.DB),
	}

	limiter := middleware.NewIPRateLimiter(cfg.Security.RateLimitPerSecond, 0)
	go limiter.Run(ctx)
	go cleanupTokens(ctx, db, appLog)

	ipExtractor, err := middleware.NewIPExtractor(cfg.Security.TrustedProxies)
	if err != nil {
		return err
	}

	e := newServer(cfg, logger, limiter, ipExtractor)
	handlers.RegisterRoutes(e, h, middleware.RequireAuth(tokenService, blacklistedTokenRepo))

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server starting",
			"addr", srv.Addr,
			"environment", cfg.Server.Environment,
			"db_driver", cfg.Database.Driver,
			"events", cfg.AMQP.URL != "")
		if err := e.StartServer(srv); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLog.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}

func newServer(cfg *config.Config, logger *slog.Logger, limiter *middleware.IPRateLimiter, ipExtractor echo.IPExtractor) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = ipExtractor
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.PanicRecovery(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))
	e.Use(echomw.BodyLimit("1M"))
	e.Use(limiter.Middleware())

	return e
}

// newPublisher connects to the broker when one is configured. A broker
// that cannot be reached disables events instead of blocking startup.
func newPublisher(cfg *config.Config, logger *slog.Logger) events.Publisher {
	log := logging.WithComponent(logger, logging.ComponentEvents)
	if cfg.AMQP.URL == "" {
		log.Info("record events disabled, AMQP_URL is not set")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, log)
	if err != nil {
		log.Error("failed to connect to broker, record events disabled", logging.FieldError, err)
		return events.NoopPublisher{}
	}
	return publisher
}

func cleanupTokens(ctx context.Context, db *database.DB, log *slog.Logger) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := db.CleanupExpiredTokens()
			if err != nil {
				log.Error("failed to clean up expired tokens", logging.FieldError, err)
				continue
			}
			if removed > 0 {
				log.Info("expired tokens removed", "count", removed)
			}
		}
	}
}
