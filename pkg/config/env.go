package config

// EnvPrefix is the envconfig prefix shared by every TECHSTORE_* variable.
const EnvPrefix = "TECHSTORE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "TECHSTORE_APP_ENV"
	EnvPort     = "TECHSTORE_APP_PORT"
	EnvDBDSN    = "TECHSTORE_DB_DSN"
	EnvDBHost   = "TECHSTORE_DB_HOST"
	EnvDBUser   = "TECHSTORE_DB_USER"
	EnvDBName   = "TECHSTORE_DB_NAME"
	EnvRedisURL = "TECHSTORE_REDIS_URL"
	EnvAIAPIKey = "TECHSTORE_AI_API_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
