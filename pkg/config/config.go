package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Inventory InventoryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WERKSTATT_APP_ENV" default:"dev"`
	Port         string `envconfig:"WERKSTATT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"WERKSTATT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WERKSTATT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// DSN points at the shop's database. The default keeps a single-file
	// SQLite store next to the binary with foreign keys enforced.
	DSN    string `envconfig:"WERKSTATT_DB_DSN" default:"file:werkstatt.db?_foreign_keys=on"`
	Driver string `envconfig:"WERKSTATT_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"WERKSTATT_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"WERKSTATT_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"WERKSTATT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WERKSTATT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	if db.DSN == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	switch db.Driver {
	case DBDriverSQLite, DBDriverPostgres:
		return nil
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvDBDriver, DBDriverSQLite, DBDriverPostgres, db.Driver)
	}
}

type InventoryConfig struct {
	// OldStockThresholdMonths controls the overview alert for stock orders
	// that still carry sellable items this many months after receipt.
	OldStockThresholdMonths int `envconfig:"WERKSTATT_OLD_STOCK_THRESHOLD_MONTHS" default:"5"`
}
