package config

// EnvPrefix is passed to envconfig; individual fields carry fully prefixed
// names so the prefix itself stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "RIGTRACK_DB_DSN"
	EnvDBHost = "RIGTRACK_DB_HOST"
	EnvDBUser = "RIGTRACK_DB_USER"
	EnvDBName = "RIGTRACK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
