package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is built once at startup and passed to the components that need it.
// Nothing outside this package reads process environment directly.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	SMTP   SMTPConfig
	CORS   CORSConfig
	Admin  AdminConfig

	// Env is "development" or "production". Error responses include
	// underlying error details only in development.
	Env string
}

type ServerConfig struct {
	Port           string
	BodyLimitBytes int
	RateLimitMax   int
	RateLimitSecs  int
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type JWTConfig struct {
	Secret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// ClientURL is the frontend origin used to build reset links.
	ClientURL string
}

type CORSConfig struct {
	AllowedOrigins string
}

// AdminConfig holds the bootstrap admin credentials seeded into an empty
// users table. Registration itself is admin-gated.
type AdminConfig struct {
	Username string
	Password string
}

// Load reads .env (if present) and the process environment into a Config.
// Missing required DB variables are reported via the second return value so
// the caller can warn and continue in development mode instead of crashing.
func Load() (*Config, []string) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			BodyLimitBytes: getEnvInt("BODY_LIMIT_BYTES", 4*1024*1024),
			RateLimitMax:   getEnvInt("RATE_LIMIT_MAX", 60),
			RateLimitSecs:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", ""),
			Port:      getEnvInt("SMTP_PORT", 465),
			User:      getEnv("SMTP_USER", ""),
			Password:  getEnv("SMTP_PASS", ""),
			From:      getEnv("SMTP_FROM", getEnv("SMTP_USER", "")),
			ClientURL: getEnv("CLIENT_URL", "http://localhost:3000"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Env: getEnv("APP_ENV", "development"),
	}

	var missing []string
	for _, req := range []struct{ key, val string }{
		{"DB_HOST", cfg.DB.Host},
		{"DB_USER", cfg.DB.User},
		{"DB_NAME", cfg.DB.Name},
		{"JWT_SECRET", cfg.JWT.Secret},
	} {
		if req.val == "" {
			missing = append(missing, req.key)
		}
	}
	return cfg, missing
}

// IsDev reports whether the process runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env != "production"
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
