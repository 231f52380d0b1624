// Package config loads application configuration from the environment
// with sane defaults for local development.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Log      LogConfig
}

// AppConfig holds application-specific settings.
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// HTTPConfig holds HTTP server timeouts.
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds postgres connection settings. An empty Host means
// the service runs on its in-memory stores.
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// DSN builds the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthConfig holds the shared login secret. Placeholder for a real
// identity provider.
type AuthConfig struct {
	SharedSecret string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// Load reads configuration from VALE_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VALE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vale-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("http.readtimeout", 10*time.Second)
	v.SetDefault("http.writetimeout", 15*time.Second)
	v.SetDefault("http.idletimeout", 60*time.Second)

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "vale")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "vale")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxopenconns", 20)
	v.SetDefault("database.maxidleconns", 10)

	v.SetDefault("jwt.secret", "dev-only-secret")
	v.SetDefault("jwt.expiration", 12*time.Hour)
	v.SetDefault("jwt.issuer", "vale-service")

	v.SetDefault("auth.sharedsecret", "123456")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}
