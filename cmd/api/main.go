package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/marketplace-api/internal/audit"
	"github.com/BruksfildServices01/marketplace-api/internal/config"
	dbpkg "github.com/BruksfildServices01/marketplace-api/internal/db"
	infraRepo "github.com/BruksfildServices01/marketplace-api/internal/infra/repository"
	"github.com/BruksfildServices01/marketplace-api/internal/logger"
	"github.com/BruksfildServices01/marketplace-api/internal/mailer"
	"github.com/BruksfildServices01/marketplace-api/internal/notify"
	"github.com/BruksfildServices01/marketplace-api/internal/revocation"
	"github.com/BruksfildServices01/marketplace-api/internal/routes"
	"github.com/BruksfildServices01/marketplace-api/internal/scheduler"
	"github.com/BruksfildServices01/marketplace-api/internal/storage"
	"github.com/BruksfildServices01/marketplace-api/internal/timezone"
	"github.com/BruksfildServices01/marketplace-api/internal/token"
	"github.com/BruksfildServices01/marketplace-api/internal/validators"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if !timezone.IsValid(cfg.Timezone) {
		log.Warn("unknown APP_TIMEZONE, falling back to UTC", zap.String("timezone", cfg.Timezone))
	}

	db := dbpkg.NewDB(cfg, log)

	if err := validators.Register(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	// ======================================================
	// INFRA
	// ======================================================
	var (
		revoked revocation.Store
		purger  scheduler.Purger
	)
	switch cfg.RevocationBackend {
	case config.RevocationRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = client.Close() }()
		revoked = revocation.NewRedisStore(client)
	default:
		store := revocation.NewGormStore(db)
		revoked = store
		purger = store
	}

	mail := mailer.NewAsync(mailer.New(cfg, log), log)

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatal("failed to configure storage", zap.Error(err))
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)
	defer auditDispatcher.Close()

	var emailCheck func(string) bool
	if cfg.VerifyEmailDomain {
		emailCheck = validators.EmailDomainCheck(net.DefaultResolver, 3*time.Second)
	}

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// ======================================================
	// SCHEDULER
	// ======================================================
	if cfg.SchedulerEnabled {
		jobs := scheduler.New(scheduler.Deps{
			Bookings: infraRepo.NewBookingGormRepository(db),
			Users:    infraRepo.NewUserGormRepository(db),
			Purger:   purger,
			Notifier: notify.New(infraRepo.NewNotificationGormRepository(db), log),
			Mail:     mail,
			Timezone: cfg.Timezone,
			Log:      log,
		})
		if err := jobs.Start(); err != nil {
			log.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer jobs.Stop()
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	files, _ := store.(*storage.LocalStore)

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         log,
		Issuer:      issuer,
		Revoked:     revoked,
		Mail:        mail,
		Storage:     store,
		Files:       files,
		Audit:       auditDispatcher,
		AuditLogger: auditLogger,
		EmailCheck:  emailCheck,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
