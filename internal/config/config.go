package config

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	SessionSecret       string
	DatabaseURL         string // empty: in-memory SQLite ledger
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string

	DefaultOwnerID          string
	Currency                string
	InitialMarkupPercent    decimal.Decimal
	AccumulateMarkupPercent decimal.Decimal
	SnapshotSchedule        string // empty disables snapshots
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("DEFAULT_OWNER_ID", "1")
	v.SetDefault("CURRENCY", "INR")
	v.SetDefault("INITIAL_MARKUP_PERCENT", "2")
	v.SetDefault("ACCUMULATE_MARKUP_PERCENT", "5")
	v.SetDefault("SNAPSHOT_SCHEDULE", "@every 1h")

	initial, err := percent(v, "INITIAL_MARKUP_PERCENT")
	if err != nil {
		return nil, err
	}
	accumulate, err := percent(v, "ACCUMULATE_MARKUP_PERCENT")
	if err != nil {
		return nil, err
	}
	currency := strings.ToUpper(v.GetString("CURRENCY"))
	if money.GetCurrency(currency) == nil {
		return nil, fmt.Errorf("config: unknown CURRENCY %q", currency)
	}

	return &Config{
		Env:                     v.GetString("APP_ENV"),
		Port:                    v.GetString("PORT"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		SessionSecret:           v.GetString("SESSION_SECRET"),
		DatabaseURL:             v.GetString("DATABASE_URL"),
		RedisURL:                v.GetString("REDIS_URL"),
		FrontendURLEndsWith:     v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:             v.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:       v.GetBool("ALLOW_CROSS_SITE_DEV"),
		HealthAdminKey:          v.GetString("HEALTH_ADMIN_KEY"),
		DefaultOwnerID:          v.GetString("DEFAULT_OWNER_ID"),
		Currency:                currency,
		InitialMarkupPercent:    initial,
		AccumulateMarkupPercent: accumulate,
		SnapshotSchedule:        strings.TrimSpace(v.GetString("SNAPSHOT_SCHEDULE")),
	}, nil
}

func percent(v *viper.Viper, key string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s: %w", key, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("config: %s must not be negative", key)
	}
	return d, nil
}
