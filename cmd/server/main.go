// Command server runs the helpdesk admin API.
//
// Bootstrap order: .env (best effort) → config → logging → database
// (open, migrate, optional demo seed, tracing plugin) → OpenTelemetry →
// Gin router → HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-helpdesk-backend/internal/config"
	"github.com/tbourn/go-helpdesk-backend/internal/domain"
	httpapi "github.com/tbourn/go-helpdesk-backend/internal/http"
	"github.com/tbourn/go-helpdesk-backend/internal/observability"
	"github.com/tbourn/go-helpdesk-backend/internal/repo"
	"github.com/tbourn/go-helpdesk-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// @title Helpdesk Admin API
// @version 1.0
// @description Administrative support-ticket API: list, filter, view, edit, assign, close, and delete tickets with an append-only audit trail.
// @BasePath /api/v1
// @schemes http
func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetLogLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}
	if cfg.SeedDemo {
		if err := seedDemo(db); err != nil {
			log.Fatal().Err(err).Msg("seed demo data")
		}
		log.Info().Msg("demo data seeded")
	}

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setup opentelemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("opentelemetry shutdown")
		}
	}()
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Fatal().Err(err).Msg("enable gorm tracing")
		}
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("helpdesk admin API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}

// seedDemo inserts a minimal working data set for local development:
// one admin, two agents, one customer, and a starter taxonomy. Inserts
// are keyed on unique columns, so re-running against an existing
// database is harmless.
func seedDemo(db *gorm.DB) error {
	users := []domain.User{
		{Name: "Ava Admin", Email: "ava@helpdesk.local", Role: domain.RoleAdmin},
		{Name: "Alex Agent", Email: "alex@helpdesk.local", Role: domain.RoleAgent},
		{Name: "Amira Agent", Email: "amira@helpdesk.local", Role: domain.RoleAgent},
		{Name: "Casey Customer", Email: "casey@example.com", Role: domain.RoleCustomer},
	}
	for i := range users {
		if err := db.Where(domain.User{Email: users[i].Email}).FirstOrCreate(&users[i]).Error; err != nil {
			return err
		}
	}
	for _, name := range []string{"Billing", "Technical", "Account"} {
		c := domain.Category{CategoryName: name}
		if err := db.Where(domain.Category{CategoryName: name}).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}
	for _, name := range []string{"bug", "question", "regression"} {
		l := domain.Label{LabelName: name}
		if err := db.Where(domain.Label{LabelName: name}).FirstOrCreate(&l).Error; err != nil {
			return err
		}
	}
	return nil
}
