package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appidentity "github.com/gympos/backend/internal/application/identity"
	appmembership "github.com/gympos/backend/internal/application/membership"
	apptill "github.com/gympos/backend/internal/application/till"
	"github.com/gympos/backend/internal/domain/shared"
	"github.com/gympos/backend/internal/infrastructure/auth"
	"github.com/gympos/backend/internal/infrastructure/config"
	"github.com/gympos/backend/internal/infrastructure/logger"
	"github.com/gympos/backend/internal/infrastructure/persistence"
	"github.com/gympos/backend/internal/interfaces/http/handler"
	"github.com/gympos/backend/internal/interfaces/http/middleware"
	"github.com/gympos/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	clock := shared.SystemClock{}

	// Repositories and transaction scope
	userRepo := persistence.NewGormUserRepository(db.DB)
	shiftRepo := persistence.NewGormShiftRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(userRepo, jwtService, clock, log)
	saleService := appmembership.NewSaleService(scope, clock, log)
	confirmationService := appmembership.NewConfirmationService(scope, clock, log)
	shiftService := apptill.NewShiftService(shiftRepo, authService, clock, log)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(),
	)

	systemHandler := handler.NewSystemHandler(db)
	engine.GET("/healthz", systemHandler.Health)
	engine.GET("/readyz", systemHandler.Ready)

	engine.Use(middleware.JWTAuthMiddleware(jwtService,
		"/healthz",
		"/readyz",
		"/api/v1/auth/login",
	))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAuthHandler(authService))
	r.Register(handler.NewSaleHandler(saleService))
	r.Register(handler.NewNotificationHandler(confirmationService))
	r.Register(handler.NewShiftHandler(shiftService))
	r.Register(systemHandler)
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()
	log.Info("server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
