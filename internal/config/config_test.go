package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:      "8080",
		DBPath:    "./data/test.db",
		JWTSecret: "a-very-long-test-secret",
		TokenTTL:  24 * time.Hour,
		Notifier:  "none",
		LogLevel:  "info",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.Notifier != "none" {
		t.Errorf("Notifier = %s, want none", cfg.Notifier)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_SECRET", "environment-provided-secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("NOTIFIER", "smtp")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %s, want 9999", cfg.Port)
	}
	if cfg.JWTSecret != "environment-provided-secret" {
		t.Errorf("JWTSecret not read from environment")
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v, want 2h", cfg.TokenTTL)
	}
	if cfg.Notifier != "smtp" {
		t.Errorf("Notifier = %s, want smtp", cfg.Notifier)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config passes",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing JWT secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "short JWT secret",
			mutate:  func(c *Config) { c.JWTSecret = "short" },
			wantErr: "at least 16 characters",
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Port = "http" },
			wantErr: "must be a number",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = "70000" },
			wantErr: "must be between",
		},
		{
			name:    "unknown notifier",
			mutate:  func(c *Config) { c.Notifier = "carrier-pigeon" },
			wantErr: "invalid notifier",
		},
		{
			name: "smtp notifier requires host",
			mutate: func(c *Config) {
				c.Notifier = "smtp"
				c.SMTPFrom = "noreply@example.com"
			},
			wantErr: "SMTP_HOST is required",
		},
		{
			name: "amqp notifier rejects bad scheme",
			mutate: func(c *Config) {
				c.Notifier = "amqp"
				c.AMQPURL = "http://localhost:5672"
				c.AMQPExchange = "x"
				c.AMQPQueue = "q"
			},
			wantErr: "invalid AMQP URL scheme",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
