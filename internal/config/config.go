package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Static    StaticConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Env  string
	Port string
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig holds cookie session settings. CookieSecure should be true
// under an HTTPS deployment.
type SessionConfig struct {
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// StaticConfig points at the frontend assets. An empty Dir disables static
// serving.
type StaticConfig struct {
	Dir string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type RateLimitConfig struct {
	Enabled bool
}

// Load reads configuration from defaults and REFA_* environment variables
// (e.g. REFA_DATABASE_URL, REFA_SESSION_TTL).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "sid")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("static.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("ratelimit.enabled", true)

	v.SetEnvPrefix("REFA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database.url"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Session: SessionConfig{
			TTL:          v.GetDuration("session.ttl"),
			CookieName:   v.GetString("session.cookie_name"),
			CookieSecure: v.GetBool("session.cookie_secure"),
		},
		Static: StaticConfig{
			Dir: v.GetString("static.dir"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Pretty: v.GetBool("log.pretty"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("ratelimit.enabled"),
		},
	}

	return cfg, nil
}
