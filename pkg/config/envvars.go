package config

// EnvPrefix namespaces every recognized environment variable.
const EnvPrefix = "CARDAPIO"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv  = "CARDAPIO_APP_ENV"
	EnvAppPort = "CARDAPIO_APP_PORT"

	EnvDBDSN  = "CARDAPIO_DB_DSN"
	EnvDBHost = "CARDAPIO_DB_HOST"
	EnvDBUser = "CARDAPIO_DB_USER"
	EnvDBName = "CARDAPIO_DB_NAME"

	EnvRedisURL  = "CARDAPIO_REDIS_URL"
	EnvRedisAddr = "CARDAPIO_REDIS_ADDR"

	EnvJWTSecret = "CARDAPIO_JWT_SECRET"

	EnvAdminPassword     = "CARDAPIO_ADMIN_PASSWORD"
	EnvAdminPasswordHash = "CARDAPIO_ADMIN_PASSWORD_HASH"

	EnvWhatsAppNumber = "CARDAPIO_WHATSAPP_NUMBER"
)

var dbEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
