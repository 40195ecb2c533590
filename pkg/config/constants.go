package config

const EnvPrefix = "WERKSTATT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names, shared with tests and deployment docs.
const (
	EnvAppEnv   = "WERKSTATT_APP_ENV"
	EnvPort     = "WERKSTATT_APP_PORT"
	EnvDBDSN    = "WERKSTATT_DB_DSN"
	EnvDBDriver = "WERKSTATT_DB_DRIVER"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)
