package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Cart    CartConfig
	Session SessionConfig
	CORS    CORSConfig
	Reviews ReviewsConfig
	Jobs    JobsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Backend == StorageBackendSQL {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.Storage.Backend == StorageBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("either %s or %s is required for the redis storage backend", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port            string        `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"STOREFRONT_SHUTDOWN_TIMEOUT" default:"15s"`
	LogLevel        string        `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
	LogWarnStack    bool          `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	AutoMigrate     bool          `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points the storefront at the remote catalog/admin API.
type CatalogConfig struct {
	APIURL           string        `envconfig:"STOREFRONT_CATALOG_API_URL" required:"true"`
	AssetBase        string        `envconfig:"STOREFRONT_CATALOG_ASSET_BASE"`
	PlaceholderImage string        `envconfig:"STOREFRONT_CATALOG_PLACEHOLDER_IMAGE" default:"/placeholder.svg?height=400&width=400"`
	Timeout          time.Duration `envconfig:"STOREFRONT_CATALOG_TIMEOUT" default:"10s"`
	ListLimit        int           `envconfig:"STOREFRONT_CATALOG_LIST_LIMIT" default:"200"`
	BrandLimit       int           `envconfig:"STOREFRONT_CATALOG_BRAND_LIMIT" default:"50"`
}

type StorageConfig struct {
	Backend    string        `envconfig:"STOREFRONT_STORAGE_BACKEND" default:"memory"`
	PreviewTTL time.Duration `envconfig:"STOREFRONT_STORAGE_PREVIEW_TTL" default:"30m"`
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case StorageBackendMemory, StorageBackendRedis, StorageBackendSQL:
		return nil
	}
	return fmt.Errorf("%s must be one of %s, %s, %s", EnvStorageBackend, StorageBackendMemory, StorageBackendRedis, StorageBackendSQL)
}

type DBConfig struct {
	DSN       string `envconfig:"STOREFRONT_DB_DSN"`
	Driver    string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`
	UseSQLite bool   `envconfig:"STOREFRONT_USE_SQLITE" default:"false"`

	LegacyHost     string `envconfig:"STOREFRONT_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREFRONT_DB_USER"`
	LegacyPassword string `envconfig:"STOREFRONT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREFRONT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Dialect reports the goose/gorm dialect for the configured driver.
func (db DBConfig) Dialect() string {
	if db.UseSQLite || strings.EqualFold(db.Driver, DBDriverSQLite) {
		return DBDriverSQLite
	}
	return DBDriverPostgres
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig tunes the per-session carts. Multi-replica deployments without
// sticky sessions need ReloadEachRequest so replicas do not overwrite each
// other's lines from stale in-memory copies.
type CartConfig struct {
	TaxRate           string        `envconfig:"STOREFRONT_CART_TAX_RATE" default:"0.10"`
	IdleTTL           time.Duration `envconfig:"STOREFRONT_CART_IDLE_TTL" default:"30m"`
	ReloadEachRequest bool          `envconfig:"STOREFRONT_CART_RELOAD_EACH_REQUEST" default:"false"`
}

type SessionConfig struct {
	CookieName   string `envconfig:"STOREFRONT_SESSION_COOKIE" default:"sf_session"`
	CookieSecure bool   `envconfig:"STOREFRONT_SESSION_COOKIE_SECURE" default:"false"`
	DefaultTheme string `envconfig:"STOREFRONT_DEFAULT_THEME" default:"light"`
}

// ReviewsConfig bounds review submissions. The rate limit needs redis; without
// it the limiter is skipped.
type ReviewsConfig struct {
	MaxImageBytes    int           `envconfig:"STOREFRONT_REVIEWS_MAX_IMAGE_BYTES" default:"2097152"`
	RateLimitWindow  time.Duration `envconfig:"STOREFRONT_REVIEWS_RATE_WINDOW" default:"1m"`
	RateLimitIP      int           `envconfig:"STOREFRONT_REVIEWS_RATE_IP_LIMIT" default:"20"`
	RateLimitSession int           `envconfig:"STOREFRONT_REVIEWS_RATE_SESSION_LIMIT" default:"5"`
}

// JobsConfig drives the in-process housekeeping runner.
type JobsConfig struct {
	Enabled  bool          `envconfig:"STOREFRONT_JOBS_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"STOREFRONT_JOBS_INTERVAL" default:"5m"`
	LockTTL  time.Duration `envconfig:"STOREFRONT_JOBS_LOCK_TTL" default:"10m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Dialect() == DBDriverSQLite {
		return fmt.Errorf("%s is required for sqlite", EnvDBDSN)
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
