package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "HB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Storage driver names accepted by StorageConfig.Driver.
const (
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)
