package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string

	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	Issuer           string

	HTTPAddress string

	AuthRateWindow time.Duration
	AuthRateMax    int
	APIRateWindow  time.Duration
	APIRateMax     int

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	AllowedOrigins []string
	LogLevel       string
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("JWT_ISSUER", "task-api")
	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("AUTH_RATE_WINDOW", "15m")
	v.SetDefault("AUTH_RATE_MAX", 10)
	v.SetDefault("API_RATE_WINDOW", "1m")
	v.SetDefault("API_RATE_MAX", 100)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")

	for _, key := range []string{
		"DATABASE_URL", "JWT_SECRET", "JWT_REFRESH_SECRET",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTRefreshSecret: v.GetString("JWT_REFRESH_SECRET"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		Issuer:           v.GetString("JWT_ISSUER"),
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		AuthRateWindow:   v.GetDuration("AUTH_RATE_WINDOW"),
		AuthRateMax:      v.GetInt("AUTH_RATE_MAX"),
		APIRateWindow:    v.GetDuration("API_RATE_WINDOW"),
		APIRateMax:       v.GetInt("API_RATE_MAX"),
		RedisAddress:     v.GetString("REDIS_ADDRESS"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		AllowedOrigins:   strings.Split(v.GetString("ALLOWED_ORIGINS"), ","),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	// refresh tokens fall back to the access secret, matching a
	// single-secret deployment
	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = cfg.JWTSecret
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive")
	}

	return cfg, nil
}
