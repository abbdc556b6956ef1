package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartdvm/auth-service/internal/auth"
	"smartdvm/auth-service/internal/config"
	"smartdvm/auth-service/internal/httpapi"
	"smartdvm/auth-service/internal/migrations"
	"smartdvm/auth-service/internal/store"
	"smartdvm/auth-service/internal/store/postgres"
	redisstore "smartdvm/auth-service/internal/store/redis"
	"smartdvm/auth-service/internal/telemetry"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg := config.Load()
	shutdownTelemetry := telemetry.Setup("auth-service")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.DatabaseURL); err != nil {
			log.Fatalf("migrations: %v", err)
		}
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	pgStore := postgres.NewStore(pool)

	// The store handles are built exactly once here and injected; the
	// session backend is selected at startup and never consulted again.
	var sessions store.SessionStore = pgStore
	if cfg.SessionBackend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		sessions = redisstore.NewSessionStore(client)
	}

	resolver := auth.NewResolver(pgStore, sessions, cfg.SessionTTL)
	handler := httpapi.NewHandler(resolver, httpapi.Options{
		SessionCookieName: cfg.SessionCookieName,
		DisplayCookieName: cfg.DisplayCookieName,
		SessionTTLSeconds: int(cfg.SessionTTL.Seconds()),
		SecureCookies:     cfg.Production(),
	})
	limiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		IPPerMinute:      cfg.RateLimitPerMinute,
		IPBurst:          cfg.RateLimitBurst,
		AccountPerMinute: cfg.AccountRateLimitPerMinute,
		AccountBurst:     cfg.AccountRateLimitBurst,
	})

	otelHandler := otelhttp.NewHandler(httpapi.LoggingMiddleware(limiter.Middleware(handler.Routes())), "auth-service")
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("auth-service listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
