package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App         AppConfig
	Docstore    DocstoreConfig
	Notion      NotionConfig
	Collections CollectionsConfig
	Locale      LocaleConfig
	Redis       RedisConfig
	Dashboard   DashboardConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Docstore.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Locale.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PRINTFLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"PRINTFLOW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PRINTFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRINTFLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DocstoreConfig struct {
	Backend    string `envconfig:"PRINTFLOW_DOCSTORE_BACKEND" default:"notion"`
	SQLitePath string `envconfig:"PRINTFLOW_DOCSTORE_SQLITE_PATH" default:"printflow.db"`
}

func (d DocstoreConfig) IsNotion() bool {
	return strings.EqualFold(d.Backend, DocstoreBackendNotion)
}

func (d DocstoreConfig) IsSQLite() bool {
	return strings.EqualFold(d.Backend, DocstoreBackendSQLite)
}

func (d DocstoreConfig) validate() error {
	if !d.IsNotion() && !d.IsSQLite() {
		return fmt.Errorf("docstore backend must be %q or %q", DocstoreBackendNotion, DocstoreBackendSQLite)
	}
	return nil
}

type NotionConfig struct {
	APIKey  string        `envconfig:"PRINTFLOW_NOTION_API_KEY"`
	BaseURL string        `envconfig:"PRINTFLOW_NOTION_BASE_URL" default:"https://api.notion.com"`
	Version string        `envconfig:"PRINTFLOW_NOTION_VERSION" default:"2022-06-28"`
	Timeout time.Duration `envconfig:"PRINTFLOW_NOTION_TIMEOUT" default:"30s"`
}

// CollectionsConfig maps each entity to its remote collection id.
type CollectionsConfig struct {
	ProductID       string `envconfig:"PRINTFLOW_DB_PRODUCT_ID"`
	CategoryID      string `envconfig:"PRINTFLOW_DB_CATEGORY_ID"`
	CustomerID      string `envconfig:"PRINTFLOW_DB_CUSTOMER_ID"`
	SupplierID      string `envconfig:"PRINTFLOW_DB_SUPPLIER_ID"`
	StoreID         string `envconfig:"PRINTFLOW_DB_STORE_ID"`
	OrderID         string `envconfig:"PRINTFLOW_DB_ORDER_ID"`
	OrderItemID     string `envconfig:"PRINTFLOW_DB_ORDER_ITEM_ID"`
	CostID          string `envconfig:"PRINTFLOW_DB_COST_ID"`
	StockID         string `envconfig:"PRINTFLOW_DB_STOCK_ID"`
	StockMovementID string `envconfig:"PRINTFLOW_DB_STOCK_MOVEMENT_ID"`
}

type LocaleConfig struct {
	Timezone   string `envconfig:"PRINTFLOW_DEFAULT_TIMEZONE" default:"America/Sao_Paulo"`
	DateFormat string `envconfig:"PRINTFLOW_DEFAULT_DATE_FORMAT" default:"02/01/2006 15:04:05"`
}

func (l LocaleConfig) validate() error {
	if strings.TrimSpace(l.Timezone) == "" {
		return fmt.Errorf("default timezone is required")
	}
	if strings.TrimSpace(l.DateFormat) == "" {
		return fmt.Errorf("default date format is required")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"PRINTFLOW_REDIS_URL"`
	Address      string        `envconfig:"PRINTFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"PRINTFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRINTFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRINTFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRINTFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRINTFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRINTFLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRINTFLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type DashboardConfig struct {
	CacheTTL          time.Duration `envconfig:"PRINTFLOW_DASHBOARD_CACHE_TTL" default:"60s"`
	LowStockThreshold float64       `envconfig:"PRINTFLOW_DASHBOARD_LOW_STOCK_THRESHOLD" default:"5"`
	PageSize          int           `envconfig:"PRINTFLOW_DASHBOARD_PAGE_SIZE" default:"100"`
}
