package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// TECHFINDER_ tags so the empty prefix keeps names stable.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvDBDSN  = "TECHFINDER_DB_DSN"
	EnvDBHost = "TECHFINDER_DB_HOST"
	EnvDBUser = "TECHFINDER_DB_USER"
	EnvDBName = "TECHFINDER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
