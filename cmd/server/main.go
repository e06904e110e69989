package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/nappsng/cms/pkg/cms/api"
	"github.com/nappsng/cms/pkg/cms/config"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	DatabaseURL string `env:"DATABASE_URL" env-default:""`

	Media MediaConfig
	SMTP  SMTPConfig

	ListLimit    int  `env:"LIST_LIMIT" env-default:"100"`
	EventLogging bool `env:"EVENT_LOGGING" env-default:"true"`
}

type MediaConfig struct {
	Bucket          string `env:"AWS_S3_BUCKET" env-default:""`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:""`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
	PublicBaseURL   string `env:"MEDIA_PUBLIC_BASE_URL" env-default:""`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" env-default:""`
	Port     int    `env:"SMTP_PORT" env-default:"587"`
	Username string `env:"SMTP_USERNAME" env-default:""`
	Password string `env:"SMTP_PASSWORD" env-default:""`
	From     string `env:"SMTP_FROM" env-default:""`
}

// buildOptions maps the environment into config options. Backends default to
// memory and switch to their external counterpart when configured.
func buildOptions(envCfg Config) []config.Option {
	opts := []config.Option{
		config.WithPort(envCfg.Port),
		config.WithEnvironment(envCfg.Environment),
		config.WithListLimit(envCfg.ListLimit),
		config.WithEventLogging(envCfg.EventLogging),
	}

	if envCfg.DatabaseURL != "" {
		opts = append(opts, config.WithDatabase("postgres", envCfg.DatabaseURL))
	}

	if envCfg.Media.Bucket != "" {
		opts = append(opts,
			config.WithS3Media(envCfg.Media.Bucket, envCfg.Media.Region),
			config.WithS3Credentials(envCfg.Media.AccessKeyID, envCfg.Media.SecretAccessKey),
		)
		if envCfg.Media.Endpoint != "" {
			opts = append(opts, config.WithS3Endpoint(envCfg.Media.Endpoint, envCfg.Media.UsePathStyle))
		}
		if envCfg.Media.PublicBaseURL != "" {
			opts = append(opts, config.WithMediaPublicBaseURL(envCfg.Media.PublicBaseURL))
		}
	}

	if envCfg.SMTP.Host != "" {
		opts = append(opts, config.WithSMTP(
			envCfg.SMTP.Host,
			envCfg.SMTP.Port,
			envCfg.SMTP.Username,
			envCfg.SMTP.Password,
			envCfg.SMTP.From,
		))
	}

	return opts
}

func main() {
	_ = godotenv.Load()

	var envCfg Config
	if err := cleanenv.ReadEnv(&envCfg); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	cfg, err := config.Load(buildOptions(envCfg)...)
	if err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	svc, err := cfg.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}

	// Set up router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	if cfg.Environment == "development" {
		r.Use(devCORS)
	}

	// Mount routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/content-blocks", api.NewContentBlockHandler(svc).Routes())
		r.Mount("/team-members", api.NewTeamMemberHandler(svc).Routes())
		r.Mount("/enrollments", api.NewEnrollmentHandler(svc).Routes())
		r.Mount("/media", api.NewMediaHandler(svc).Routes())
		r.Mount("/mail", api.NewMailHandler(svc).Routes())
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

// devCORS permits browser clients during local development.
func devCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
