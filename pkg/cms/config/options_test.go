package config

import (
	"testing"
)

func TestWithPort(t *testing.T) {
	cfg, err := Load(WithPort("9090"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got: %s", cfg.Port)
	}
}

func TestWithPortEmpty(t *testing.T) {
	_, err := Load(WithPort(""))
	if err == nil {
		t.Error("expected error for empty port, got nil")
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got: %s", cfg.Port)
	}
	if cfg.DatabaseType != "memory" {
		t.Errorf("expected default database type memory, got: %s", cfg.DatabaseType)
	}
	if cfg.MediaType != "memory" {
		t.Errorf("expected default media type memory, got: %s", cfg.MediaType)
	}
	if cfg.MailerType != "memory" {
		t.Errorf("expected default mailer type memory, got: %s", cfg.MailerType)
	}
}

func TestWithDatabase(t *testing.T) {
	tests := []struct {
		name      string
		dbType    string
		url       string
		wantError bool
	}{
		{"memory valid", "memory", "", false},
		{"postgres valid", "postgres", "postgresql://localhost/test", false},
		{"postgres missing url", "postgres", "", true},
		{"invalid type", "mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(WithDatabase(tt.dbType, tt.url))
			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if cfg.DatabaseType != tt.dbType {
				t.Errorf("expected database type %s, got: %s", tt.dbType, cfg.DatabaseType)
			}
		})
	}
}

func TestWithS3Media(t *testing.T) {
	cfg, err := Load(
		WithS3Media("media-bucket", "eu-west-1"),
		WithS3Credentials("key", "secret"),
		WithS3Endpoint("http://localhost:9000", true),
		WithMediaPublicBaseURL("https://cdn.example.org"),
	)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.MediaType != "s3" {
		t.Errorf("expected media type s3, got: %s", cfg.MediaType)
	}
	if cfg.Media.Bucket != "media-bucket" {
		t.Errorf("expected bucket media-bucket, got: %s", cfg.Media.Bucket)
	}
	if cfg.Media.Region != "eu-west-1" {
		t.Errorf("expected region eu-west-1, got: %s", cfg.Media.Region)
	}
	if !cfg.Media.UsePathStyle {
		t.Error("expected path style to be enabled")
	}
	if cfg.Media.PublicBaseURL != "https://cdn.example.org" {
		t.Errorf("unexpected public base URL: %s", cfg.Media.PublicBaseURL)
	}
}

func TestWithS3MediaMissingBucket(t *testing.T) {
	_, err := Load(WithS3Media("", "us-east-1"))
	if err == nil {
		t.Error("expected error for empty bucket, got nil")
	}
}

func TestWithSMTP(t *testing.T) {
	cfg, err := Load(WithSMTP("smtp.example.org", 2525, "user", "pass", "noreply@example.org"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.MailerType != "smtp" {
		t.Errorf("expected mailer type smtp, got: %s", cfg.MailerType)
	}
	if cfg.SMTP.Port != 2525 {
		t.Errorf("expected smtp port 2525, got: %d", cfg.SMTP.Port)
	}
}

func TestWithSMTPMissingHost(t *testing.T) {
	_, err := Load(WithSMTP("", 587, "", "", "noreply@example.org"))
	if err == nil {
		t.Error("expected error for empty smtp host, got nil")
	}
}

func TestWithListLimit(t *testing.T) {
	cfg, err := Load(WithListLimit(50))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.ListLimit != 50 {
		t.Errorf("expected list limit 50, got: %d", cfg.ListLimit)
	}

	if _, err := Load(WithListLimit(0)); err == nil {
		t.Error("expected error for zero list limit, got nil")
	}
}

func TestBuildServiceWithMemoryBackends(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	svc, err := cfg.BuildService()
	if err != nil {
		t.Fatalf("expected no error building service, got: %v", err)
	}
	if svc == nil {
		t.Fatal("expected service, got nil")
	}
}
