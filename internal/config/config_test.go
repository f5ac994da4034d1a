package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("expected default port 8090, got %d", cfg.Server.Port)
	}
	if cfg.Auth.TokenMode != TokenModeMock {
		t.Errorf("expected mock token mode, got %q", cfg.Auth.TokenMode)
	}
	if cfg.Fixtures.Source != FixtureSourceEmbed {
		t.Errorf("expected embedded fixtures, got %q", cfg.Fixtures.Source)
	}
	if !cfg.Workflow.EnforceTransitions {
		t.Error("expected transition enforcement on by default")
	}
	if cfg.Latency.Max != 0 {
		t.Errorf("expected latency disabled, got %s", cfg.Latency.Max)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("AUTH_TOKEN_MODE", "jwt")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("WORKFLOW_ENFORCE_TRANSITIONS", "false")
	t.Setenv("LATENCY_MAX", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Auth.TokenMode != TokenModeJWT || cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Workflow.EnforceTransitions {
		t.Error("expected enforcement disabled by env")
	}
	if cfg.Latency.Max != 250*time.Millisecond {
		t.Errorf("expected 250ms latency, got %s", cfg.Latency.Max)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Auth:     AuthConfig{TokenMode: TokenModeMock, SessionBackend: SessionBackendMemory},
			Fixtures: FixturesConfig{Source: FixtureSourceEmbed},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"jwt without secret", func(c *Config) { c.Auth.TokenMode = TokenModeJWT }, true},
		{"jwt with secret", func(c *Config) { c.Auth.TokenMode = TokenModeJWT; c.Auth.JWTSecret = "x" }, false},
		{"unknown token mode", func(c *Config) { c.Auth.TokenMode = "opaque" }, true},
		{"unknown session backend", func(c *Config) { c.Auth.SessionBackend = "memcached" }, true},
		{"dir without path", func(c *Config) { c.Fixtures.Source = FixtureSourceDir }, true},
		{"minio without bucket", func(c *Config) { c.Fixtures.Source = FixtureSourceMinIO; c.MinIO.Endpoint = "localhost:9000" }, true},
		{"inverted latency", func(c *Config) { c.Latency.Min = time.Second }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("MES_TEST_KEY", "set")
	if got := GetEnvOrDefault("MES_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("expected env value, got %q", got)
	}
	if got := GetEnvOrDefault("MES_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}
