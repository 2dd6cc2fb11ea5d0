package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type Config struct {
	DBDriver string `toml:"db_driver"`
	DBUrl    string `toml:"database_url"`

	JWTSecret  string `toml:"jwt_secret"`
	ServerPort string `toml:"server_port"`
	LogLevel   string `toml:"log_level"`

	Shop Shop `toml:"shop"`

	RedisURL           string   `toml:"redis_url"`
	RateLimitPerMinute int      `toml:"rate_limit_per_minute"`
	SessionTTL         Duration `toml:"session_ttl"`
	AdminIdleTimeout   Duration `toml:"admin_idle_timeout"`

	PublicBaseURL string   `toml:"public_base_url"`
	CookieSecure  bool     `toml:"cookie_secure"`
	CORSOrigins   []string `toml:"cors_origins"`

	SeedAdminUsername string `toml:"seed_admin_username"`
	SeedAdminPassword string `toml:"seed_admin_password"`
}

type Shop struct {
	Timezone         string `toml:"timezone"`
	Open             string `toml:"open"`
	Close            string `toml:"close"`
	LastEnd          string `toml:"last_end"`
	ClosedWeekday    string `toml:"closed_weekday"`
	PublicCapacity   int    `toml:"public_capacity"`
	CustomerCapacity int    `toml:"customer_capacity"`
}

// Duration decodes "30m" style strings from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() *Config {
	return &Config{
		DBDriver:   "sqlite",
		DBUrl:      "barbershop.db",
		JWTSecret:  "changeme",
		ServerPort: "8080",
		LogLevel:   "info",
		Shop: Shop{
			Timezone:         timezone.DefaultTimezone,
			Open:             "11:00",
			Close:            "19:00",
			LastEnd:          "18:30",
			ClosedWeekday:    "monday",
			PublicCapacity:   3,
			CustomerCapacity: 2,
		},
		RateLimitPerMinute: 60,
		SessionTTL:         Duration{24 * time.Hour},
		AdminIdleTimeout:   Duration{30 * time.Minute},
		PublicBaseURL:      "http://localhost:8080",
		SeedAdminUsername:  "admin",
		SeedAdminPassword:  "admin123",
	}
}

// Load layers defaults, an optional TOML file, an optional .env file and
// finally the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBUrl = getEnv("DATABASE_URL", c.DBUrl)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	c.SeedAdminUsername = getEnv("SEED_ADMIN_USERNAME", c.SeedAdminUsername)
	c.SeedAdminPassword = getEnv("SEED_ADMIN_PASSWORD", c.SeedAdminPassword)
	c.PublicBaseURL = getEnv("PUBLIC_BASE_URL", c.PublicBaseURL)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}

	c.Shop.Timezone = getEnv("SHOP_TIMEZONE", c.Shop.Timezone)
	c.Shop.Open = getEnv("SHOP_OPEN", c.Shop.Open)
	c.Shop.Close = getEnv("SHOP_CLOSE", c.Shop.Close)
	c.Shop.LastEnd = getEnv("SHOP_LAST_END", c.Shop.LastEnd)
	c.Shop.ClosedWeekday = getEnv("SHOP_CLOSED_WEEKDAY", c.Shop.ClosedWeekday)

	var err error
	if c.Shop.PublicCapacity, err = getEnvInt("PUBLIC_CAPACITY", c.Shop.PublicCapacity); err != nil {
		return err
	}
	if c.Shop.CustomerCapacity, err = getEnvInt("CUSTOMER_CAPACITY", c.Shop.CustomerCapacity); err != nil {
		return err
	}
	if c.RateLimitPerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute); err != nil {
		return err
	}
	if c.SessionTTL.Duration, err = getEnvDuration("SESSION_TTL", c.SessionTTL.Duration); err != nil {
		return err
	}
	if c.AdminIdleTimeout.Duration, err = getEnvDuration("ADMIN_IDLE_TIMEOUT", c.AdminIdleTimeout.Duration); err != nil {
		return err
	}
	if c.CookieSecure, err = getEnvBool("COOKIE_SECURE", c.CookieSecure); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if !timezone.IsValid(c.Shop.Timezone) {
		return fmt.Errorf("config: unknown timezone %q", c.Shop.Timezone)
	}
	for _, hm := range []string{c.Shop.Open, c.Shop.Close, c.Shop.LastEnd} {
		if _, err := timezone.ParseTimeHHMM(hm); err != nil {
			return fmt.Errorf("config: shop time %q: %w", hm, err)
		}
	}
	if _, err := c.ClosedDay(); err != nil {
		return err
	}
	if c.Shop.PublicCapacity < 1 || c.Shop.CustomerCapacity < 1 {
		return errors.New("config: capacities must be positive")
	}
	return nil
}

func (c *Config) ClosedDay() (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(c.Shop.ClosedWeekday))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("config: unknown weekday %q", c.Shop.ClosedWeekday)
}

func (c *Config) Location() *time.Location {
	return timezone.Location(c.Shop.Timezone)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
