package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// devJWTSecret is only accepted outside release mode.
const devJWTSecret = "default_super_secret_key"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Login    LoginConfig
	Log      LogConfig
	// AdminUsernames are granted the admin role when their account is created.
	AdminUsernames []string
}

type ServerConfig struct {
	Port               string
	Mode               string
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds a postgres connection URL.
func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type RedisConfig struct {
	URL string
}

type LoginConfig struct {
	MaxAttempts   int
	LockoutWindow time.Duration
}

type LogConfig struct {
	Level string
}

// Load reads configs/.env (if present) into the process environment and then
// resolves every key through viper, falling back to development defaults.
func Load() (*Config, error) {
	if err := godotenv.Load("configs/.env"); err != nil {
		slog.Debug("no configs/.env file found, using process environment")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", gin.DebugMode)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_ACCESS_TOKEN_TTL", "30m")
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_LOCKOUT_WINDOW", "15m")
	v.SetDefault("LOG_LEVEL", "info")
	return v
}

// FromViper maps a populated viper instance onto Config.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetString("PORT"),
			Mode:               v.GetString("GIN_MODE"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			AccessTokenTTL: v.GetDuration("JWT_ACCESS_TOKEN_TTL"),
		},
		Redis: RedisConfig{URL: v.GetString("REDIS_URL")},
		Login: LoginConfig{
			MaxAttempts:   v.GetInt("LOGIN_MAX_ATTEMPTS"),
			LockoutWindow: v.GetDuration("LOGIN_LOCKOUT_WINDOW"),
		},
		Log:            LogConfig{Level: v.GetString("LOG_LEVEL")},
		AdminUsernames: splitList(v.GetString("ADMIN_USERNAMES")),
	}

	if cfg.JWT.Secret == "" {
		if cfg.Server.Mode == gin.ReleaseMode {
			return nil, errors.New("JWT_SECRET environment variable is required in release mode")
		}
		cfg.JWT.Secret = devJWTSecret
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		return nil, errors.New("JWT_ACCESS_TOKEN_TTL must be a positive duration")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
