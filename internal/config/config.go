package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Fixtures FixturesConfig `mapstructure:"fixtures"`
	Latency  LatencyConfig  `mapstructure:"latency"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Token modes
const (
	TokenModeMock = "mock"
	TokenModeJWT  = "jwt"
)

// Session backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type AuthConfig struct {
	TokenMode      string        `mapstructure:"token_mode"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	Issuer         string        `mapstructure:"issuer"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	SessionBackend string        `mapstructure:"session_backend"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// Fixture sources
const (
	FixtureSourceEmbed = "embed"
	FixtureSourceDir   = "dir"
	FixtureSourceMinIO = "minio"
)

type FixturesConfig struct {
	Source string `mapstructure:"source"`
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
}

// LatencyConfig artificial delay applied to API calls; zero disables it.
type LatencyConfig struct {
	Min time.Duration `mapstructure:"min"`
	Max time.Duration `mapstructure:"max"`
}

type WorkflowConfig struct {
	EnforceTransitions bool `mapstructure:"enforce_transitions"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects option values the service cannot act on
func (c *Config) Validate() error {
	switch c.Auth.TokenMode {
	case TokenModeMock:
	case TokenModeJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required when auth.token_mode is %q", TokenModeJWT)
		}
	default:
		return fmt.Errorf("unknown auth.token_mode %q", c.Auth.TokenMode)
	}
	switch c.Auth.SessionBackend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown auth.session_backend %q", c.Auth.SessionBackend)
	}
	switch c.Fixtures.Source {
	case FixtureSourceEmbed:
	case FixtureSourceDir:
		if c.Fixtures.Dir == "" {
			return fmt.Errorf("fixtures.dir is required when fixtures.source is %q", FixtureSourceDir)
		}
	case FixtureSourceMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("minio.endpoint and minio.bucket are required when fixtures.source is %q", FixtureSourceMinIO)
		}
	default:
		return fmt.Errorf("unknown fixtures.source %q", c.Fixtures.Source)
	}
	if c.Latency.Min < 0 || c.Latency.Max < c.Latency.Min {
		return fmt.Errorf("latency.max (%s) must not be below latency.min (%s)", c.Latency.Max, c.Latency.Min)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 0)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("auth.token_mode", TokenModeMock)
	v.SetDefault("auth.issuer", "nimo-mes")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.session_backend", SessionBackendMemory)

	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("fixtures.source", FixtureSourceEmbed)
	v.SetDefault("fixtures.prefix", "fixtures")

	v.SetDefault("latency.min", 0)
	v.SetDefault("latency.max", 0)

	v.SetDefault("workflow.enforce_transitions", true)
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")

	// Auth
	v.BindEnv("auth.token_mode", "AUTH_TOKEN_MODE")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.session_backend", "AUTH_SESSION_BACKEND")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// MinIO
	v.BindEnv("minio.endpoint", "MINIO_ENDPOINT")
	v.BindEnv("minio.access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("minio.secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("minio.bucket", "MINIO_BUCKET")

	// Fixtures
	v.BindEnv("fixtures.source", "FIXTURES_SOURCE")
	v.BindEnv("fixtures.dir", "FIXTURES_DIR")

	// Latency
	v.BindEnv("latency.min", "LATENCY_MIN")
	v.BindEnv("latency.max", "LATENCY_MAX")

	// Workflow
	v.BindEnv("workflow.enforce_transitions", "WORKFLOW_ENFORCE_TRANSITIONS")
}

// GetEnvOrDefault returns the env value for key, or defaultValue when unset
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
