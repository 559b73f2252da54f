package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBDriver    string
	DatabaseURL string

	AuthURL            string
	AuthAnonKey        string
	AuthServiceRoleKey string
	AuthJWTSecret      string
	CookieSecure       bool

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	LogLevel  string
	LogFormat string
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("REDIS_ADDR", "redis:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL_SECONDS", 300)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("COOKIE_SECURE", false)
}

// Load reads an optional .env file, then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppPort:            v.GetString("APP_PORT"),
		AppEnv:             v.GetString("APP_ENV"),
		DBDriver:           v.GetString("DB_DRIVER"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		AuthURL:            v.GetString("AUTH_URL"),
		AuthAnonKey:        v.GetString("AUTH_ANON_KEY"),
		AuthServiceRoleKey: v.GetString("AUTH_SERVICE_ROLE_KEY"),
		AuthJWTSecret:      v.GetString("AUTH_JWT_SECRET"),
		CookieSecure:       v.GetBool("COOKIE_SECURE"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisDB:            v.GetInt("REDIS_DB"),
		IdempTTLSecs:       v.GetInt("IDEMPOTENCY_TTL_SECONDS"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (postgres|mysql|sqlite)", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("missing DATABASE_URL")
	}
	if c.AuthURL == "" || c.AuthAnonKey == "" || c.AuthServiceRoleKey == "" {
		return errors.New("missing auth config (AUTH_URL/AUTH_ANON_KEY/AUTH_SERVICE_ROLE_KEY)")
	}
	if c.AuthJWTSecret == "" {
		return errors.New("missing AUTH_JWT_SECRET")
	}
	if c.IsProduction() && !c.CookieSecure {
		return errors.New("COOKIE_SECURE must be true in production")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }
