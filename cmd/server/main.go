package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/relaypost/backend/internal/config"
	"github.com/relaypost/backend/internal/handler"
	"github.com/relaypost/backend/internal/limiter"
	"github.com/relaypost/backend/internal/logging"
	"github.com/relaypost/backend/internal/service"
	"github.com/relaypost/backend/pkg/captcha"
	"github.com/relaypost/backend/pkg/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel)

	// Admission limiter store: shared Postgres when DATABASE_URL is set,
	// per-process memory otherwise.
	var store limiter.Store
	var storePinger handler.Pinger
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("limiter store connect failed", "error", err)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			logging.Fatal("limiter store unreachable", "error", err)
		}
		pg := limiter.NewPgStore(pool)
		store = pg
		storePinger = pg
	} else {
		store = limiter.NewMemoryStore()
	}

	verifier := captcha.NewClient(cfg.Captcha.Secret, "")
	smtpMailer := mailer.NewSMTPMailer(mailer.Options{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		To:       cfg.Mail.To,
		HTML:     cfg.Mail.HTMLBody,
	})
	relayService := service.NewRelayService(verifier, smtpMailer, cfg.Captcha)

	submitHandler := handler.NewSubmitHandler(relayService)
	healthHandler := handler.NewHealthHandler(storePinger)
	lim := limiter.New(cfg.RateLimit.Max, cfg.RateLimit.Window, store)
	gate := handler.NewOriginGate(cfg.AllowedOrigins)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Health)
	// The limiter applies to the submission endpoint only, not globally.
	mux.Handle("POST /send-email", lim.Middleware(http.HandlerFunc(submitHandler.Submit)))

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler.RequestLogger(gate.Middleware(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
