package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nappsng/cms/pkg/cms"
	mailmemory "github.com/nappsng/cms/pkg/cms/mail/memory"
	mailsmtp "github.com/nappsng/cms/pkg/cms/mail/smtp"
	mediamemory "github.com/nappsng/cms/pkg/cms/media/memory"
	medias3 "github.com/nappsng/cms/pkg/cms/media/s3"
	"github.com/nappsng/cms/pkg/cms/repo/memory"
	repopg "github.com/nappsng/cms/pkg/cms/repo/postgres"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		Environment:        "development",
		DatabaseType:       "memory",
		MediaType:          "memory",
		MailerType:         "memory",
		ListLimit:          100,
		EnableEventLogging: true,
	}
}

// ServerConfig represents server configuration for the cms service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Media host configuration
	MediaType string // "memory", "s3"
	Media     MediaConfig

	// Mailer configuration
	MailerType string // "memory", "smtp"
	SMTP       SMTPConfig

	// Service options
	ListLimit          int
	EnableEventLogging bool
}

// MediaConfig holds S3-compatible media host settings.
type MediaConfig struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UsePathStyle    bool
	PublicBaseURL   string
	PresignDuration int
}

// SMTPConfig holds SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if c.MediaType != "memory" && c.MediaType != "s3" {
		return errors.New("media_type must be 'memory' or 's3'")
	}
	if c.MediaType == "s3" && c.Media.Bucket == "" {
		return errors.New("media bucket is required when using s3")
	}

	if c.MailerType != "memory" && c.MailerType != "smtp" {
		return errors.New("mailer_type must be 'memory' or 'smtp'")
	}
	if c.MailerType == "smtp" && c.SMTP.Host == "" {
		return errors.New("smtp host is required when using smtp")
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (cms.Service, error) {
	var options []cms.Option

	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}
	options = append(options, cms.WithRepository(repo))

	media, err := c.buildMediaStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build media store: %w", err)
	}
	options = append(options, cms.WithMediaStore(media))

	mailer, err := c.buildMailer()
	if err != nil {
		return nil, fmt.Errorf("failed to build mailer: %w", err)
	}
	options = append(options, cms.WithMailer(mailer))

	if c.ListLimit > 0 {
		options = append(options, cms.WithListLimit(c.ListLimit))
	}
	if c.EnableEventLogging {
		options = append(options, cms.WithEventSink(cms.NewLoggingEventSink(slog.Default())))
	}

	return cms.New(options...)
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository() (cms.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), nil
	case "postgres":
		pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// buildMediaStore creates a MediaStore based on the configuration
func (c *ServerConfig) buildMediaStore() (cms.MediaStore, error) {
	switch c.MediaType {
	case "memory":
		return mediamemory.New(), nil
	case "s3":
		return medias3.New(medias3.Config{
			Region:          c.Media.Region,
			Bucket:          c.Media.Bucket,
			AccessKeyID:     c.Media.AccessKeyID,
			SecretAccessKey: c.Media.SecretAccessKey,
			Endpoint:        c.Media.Endpoint,
			UsePathStyle:    c.Media.UsePathStyle,
			PublicBaseURL:   c.Media.PublicBaseURL,
			PresignDuration: c.Media.PresignDuration,
		})
	default:
		return nil, fmt.Errorf("unsupported media type: %s", c.MediaType)
	}
}

// buildMailer creates a Mailer based on the configuration
func (c *ServerConfig) buildMailer() (cms.Mailer, error) {
	switch c.MailerType {
	case "memory":
		return mailmemory.New(), nil
	case "smtp":
		return mailsmtp.New(mailsmtp.Config{
			Host:     c.SMTP.Host,
			Port:     c.SMTP.Port,
			Username: c.SMTP.Username,
			Password: c.SMTP.Password,
			From:     c.SMTP.From,
		})
	default:
		return nil, fmt.Errorf("unsupported mailer type: %s", c.MailerType)
	}
}

// PingPostgres verifies connectivity to Postgres.
func PingPostgres(databaseURL string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
