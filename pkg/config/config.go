package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	AI           AIConfig
	Chat         ChatConfig
	Analytics    AnalyticsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TECHSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"TECHSTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TECHSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TECHSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TECHSTORE_DB_DSN"`
	Driver string `envconfig:"TECHSTORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TECHSTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"TECHSTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TECHSTORE_DB_USER"`
	LegacyPassword string `envconfig:"TECHSTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"TECHSTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"TECHSTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TECHSTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TECHSTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TECHSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TECHSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TECHSTORE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TECHSTORE_REDIS_ADDR"`
	Password     string        `envconfig:"TECHSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TECHSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TECHSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TECHSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TECHSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TECHSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TECHSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TECHSTORE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TECHSTORE_AUTO_MIGRATE" default:"false"`
}

// AIConfig configures the external completion service used for insights,
// chat replies, and recommendations.
type AIConfig struct {
	APIKey         string        `envconfig:"TECHSTORE_AI_API_KEY"`
	BaseURL        string        `envconfig:"TECHSTORE_AI_BASE_URL"`
	Model          string        `envconfig:"TECHSTORE_AI_MODEL" default:"gpt-4o-mini"`
	RequestTimeout time.Duration `envconfig:"TECHSTORE_AI_REQUEST_TIMEOUT" default:"20s"`
}

type ChatConfig struct {
	HistoryContextSize int `envconfig:"TECHSTORE_CHAT_HISTORY_CONTEXT" default:"6"`
	HistoryPageSize    int `envconfig:"TECHSTORE_CHAT_HISTORY_PAGE" default:"50"`
	MaxTokens          int `envconfig:"TECHSTORE_CHAT_MAX_TOKENS" default:"800"`
}

// AnalyticsConfig carries the forecast multipliers and aggregation knobs.
// The growth factors are fixed extrapolation constants, not fitted values.
type AnalyticsConfig struct {
	SalesGrowth     float64       `envconfig:"TECHSTORE_ANALYTICS_SALES_GROWTH" default:"1.15"`
	OrdersGrowth    float64       `envconfig:"TECHSTORE_ANALYTICS_ORDERS_GROWTH" default:"1.12"`
	AOVGrowth       float64       `envconfig:"TECHSTORE_ANALYTICS_AOV_GROWTH" default:"1.02"`
	CustomersGrowth float64       `envconfig:"TECHSTORE_ANALYTICS_CUSTOMERS_GROWTH" default:"1.18"`
	ProductGrowth   float64       `envconfig:"TECHSTORE_ANALYTICS_PRODUCT_GROWTH" default:"1.2"`
	FallbackGrowth  float64       `envconfig:"TECHSTORE_ANALYTICS_FALLBACK_GROWTH" default:"1.1"`
	InsightTimeout  time.Duration `envconfig:"TECHSTORE_ANALYTICS_INSIGHT_TIMEOUT" default:"25s"`
	InsightTokens   int           `envconfig:"TECHSTORE_ANALYTICS_INSIGHT_TOKENS" default:"1200"`
	CacheTTL        time.Duration `envconfig:"TECHSTORE_ANALYTICS_CACHE_TTL" default:"2m"`
	Timezone        string        `envconfig:"TECHSTORE_ANALYTICS_TIMEZONE" default:"UTC"`
}

// Location resolves the configured timezone, defaulting to UTC on bad input.
func (a AnalyticsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
