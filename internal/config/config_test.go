package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("Port = %s, want 8081", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %s, want memory", cfg.DataBackend)
	}
	if cfg.AMQPQueue != "sync_entries" {
		t.Errorf("AMQPQueue = %s, want sync_entries", cfg.AMQPQueue)
	}
	if cfg.ConsumeRetryInterval != 5*time.Second {
		t.Errorf("ConsumeRetryInterval = %v, want 5s", cfg.ConsumeRetryInterval)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", t.TempDir()+"/app.db")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %s, want 9000", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %s, want sqlite", cfg.DataBackend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"unknown backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "invalid AMQP URL scheme"},
		{"empty queue with amqp", func(c *Config) { c.AMQPQueue = "" }, "queue name cannot be empty"},
		{"retry interval too short", func(c *Config) { c.ConsumeRetryInterval = time.Millisecond }, "consume retry interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
