package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/chatbot"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-booking/internal/db"
	"github.com/BruksfildServices01/salon-booking/internal/infra/lock"
	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/mq"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
	"github.com/BruksfildServices01/salon-booking/internal/obs"
	"github.com/BruksfildServices01/salon-booking/internal/routes"
	"github.com/BruksfildServices01/salon-booking/internal/storage"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

const serviceName = "salon-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// TRACING
	// ======================================================
	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.OTelEndpoint, cfg.Env)
	if err != nil {
		zl.Fatal("tracer", zap.Error(err))
	}

	// ======================================================
	// DATABASE
	// ======================================================
	db, err := dbpkg.NewDB(cfg, zl)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}

	deps := routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    zl,
		Clock:  timezone.System(),
	}

	// ======================================================
	// LOCKS
	// ======================================================
	if cfg.RedisURL != "" {
		rdb, err := lock.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			zl.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		deps.Redis = rdb
		deps.Locker = lock.NewRedisLocker(rdb, lock.DefaultWait)
		zl.Info("using redis locks")
	} else {
		deps.Locker = lock.NewMemoryLocker(lock.DefaultWait)
		zl.Warn("REDIS_URL not set, using in-process locks")
	}

	// ======================================================
	// ASYNC SIDE EFFECTS
	// ======================================================
	var pub notify.Publisher = notify.NewLogPublisher(zl)
	if cfg.RabbitURL != "" {
		mqPub, err := mq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zl.Fatal("rabbitmq", zap.Error(err))
		}
		defer mqPub.Close()
		pub = mqPub
	} else {
		zl.Warn("RABBIT_URL not set, notifications are only logged")
	}

	deps.Notify = notify.NewDispatcher(pub, zl)
	deps.AuditLogger = audit.New(db)
	deps.Audit = audit.NewDispatcher(deps.AuditLogger, zl)

	// ======================================================
	// OPTIONAL INTEGRATIONS
	// ======================================================
	uploader, err := storage.NewS3Uploader(cfg.S3)
	switch {
	case err == nil:
		deps.Uploader = uploader
	case errors.Is(err, storage.ErrNotConfigured):
		zl.Warn("S3 not configured, avatar uploads disabled")
	default:
		zl.Fatal("s3", zap.Error(err))
	}

	if cfg.Gemini.APIKey != "" {
		gen, err := chatbot.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			zl.Fatal("gemini", zap.Error(err))
		}
		deps.Generator = gen
	} else {
		zl.Warn("GEMINI_API_KEY not set, chatbot answers with the fallback reply")
	}

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.Trace(serviceName),
		middleware.RequestLogger(zl),
		middleware.Recovery(zl),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}

	// Drain queued side effects before their sinks close.
	deps.Notify.Close()
	deps.Audit.Close()

	if err := shutdownTracer(shutdownCtx); err != nil {
		zl.Error("tracer shutdown", zap.Error(err))
	}
}
