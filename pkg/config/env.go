package config

// EnvPrefix is handed to envconfig; every field carries an explicit envconfig tag so
// the prefix only matters for untagged fields.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
	StorageBackendSQL    = "sql"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite3"
)

const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvCatalogAPIURL  = "STOREFRONT_CATALOG_API_URL"
	EnvCatalogAssets  = "STOREFRONT_CATALOG_ASSET_BASE"
	EnvCatalogTimeout = "STOREFRONT_CATALOG_TIMEOUT"
	EnvStorageBackend = "STOREFRONT_STORAGE_BACKEND"
	EnvDBDSN          = "STOREFRONT_DB_DSN"
	EnvDBDriver       = "STOREFRONT_DB_DRIVER"
	EnvDBHost         = "STOREFRONT_DB_HOST"
	EnvDBUser         = "STOREFRONT_DB_USER"
	EnvDBName         = "STOREFRONT_DB_NAME"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvRedisAddr      = "STOREFRONT_REDIS_ADDR"
	EnvCartTaxRate    = "STOREFRONT_CART_TAX_RATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
