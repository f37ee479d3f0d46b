package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/okian/planner/internal/adapters/http/api"
	"github.com/okian/planner/internal/adapters/repository"
	app "github.com/okian/planner/internal/app"
	"github.com/okian/planner/internal/config"
	"github.com/okian/planner/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
	connectTimeout    = 10 * time.Second
)

func main() {
	// Optional .env for local development; a missing file is fine.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Warn(ctx, "invalid timezone; falling back to process zone",
				logger.String("timezone", cfg.Timezone), logger.Error(err))
			loc = time.Local
		}
	}

	// Storage backend: MongoDB when configured, in-memory otherwise.
	var store repository.Store
	if cfg.MongoURI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		mongoStore, err := repository.NewMongoStore(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
		cancel()
		if err != nil {
			log.Error(ctx, "mongo connection failed", logger.Error(err))
			return
		}
		log.Info(ctx, "connected to MongoDB", logger.String("database", cfg.MongoDatabase))
		store = mongoStore
	} else {
		log.Info(ctx, "no mongo_uri configured; using in-memory store")
		store = repository.NewMemoryStore()
	}

	svc := app.New(
		app.WithStore(store),
		app.WithLocation(loc),
		app.WithLogger(log),
	)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := svc.Close(closeCtx); err != nil {
			log.Error(closeCtx, "store close failed", logger.Error(err))
		}
	}()

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, api.Limits{
		DefaultPage: cfg.DefaultPageLimit,
		MaxPage:     cfg.MaxPageLimit,
		Upcoming:    cfg.UpcomingLimit,
	})
	apiServer.Register(ctx, mux)

	var handler http.Handler = mux
	if cfg.RateLimitRPS > 0 {
		handler = api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware(mux)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
