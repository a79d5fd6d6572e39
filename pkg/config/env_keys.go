package config

// EnvPrefix namespaces every environment variable read by envconfig.
const EnvPrefix = "RESTOS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "RESTOS_APP_ENV"
	EnvPort       = "RESTOS_APP_PORT"
	EnvRedisURL   = "RESTOS_REDIS_URL"
	EnvJWTSecret  = "RESTOS_JWT_SECRET"
	EnvJWTIssuer  = "RESTOS_JWT_ISSUER"
	EnvJWTExpMins = "RESTOS_JWT_EXPIRATION_MINUTES"
)

const (
	EnvDBDSN  = "RESTOS_DB_DSN"
	EnvDBHost = "RESTOS_DB_HOST"
	EnvDBUser = "RESTOS_DB_USER"
	EnvDBName = "RESTOS_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
