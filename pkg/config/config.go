package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Admin         AdminConfig
	WhatsApp      WhatsAppConfig
	Orders        OrdersConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Redis.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARDAPIO_APP_ENV" required:"true"`
	Port         string `envconfig:"CARDAPIO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARDAPIO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARDAPIO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARDAPIO_DB_DSN"`
	Driver string `envconfig:"CARDAPIO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"CARDAPIO_DB_HOST"`
	Port     int    `envconfig:"CARDAPIO_DB_PORT" default:"5432"`
	User     string `envconfig:"CARDAPIO_DB_USER"`
	Password string `envconfig:"CARDAPIO_DB_PASSWORD"`
	Name     string `envconfig:"CARDAPIO_DB_NAME"`
	SSLMode  string `envconfig:"CARDAPIO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARDAPIO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARDAPIO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARDAPIO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARDAPIO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig accepts either a full URL or a bare address; URL wins when
// both are set.
type RedisConfig struct {
	URL          string        `envconfig:"CARDAPIO_REDIS_URL"`
	Address      string        `envconfig:"CARDAPIO_REDIS_ADDR"`
	Password     string        `envconfig:"CARDAPIO_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARDAPIO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARDAPIO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARDAPIO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARDAPIO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARDAPIO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARDAPIO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CARDAPIO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CARDAPIO_JWT_ISSUER" default:"cardapio"`
	ExpirationMinutes int    `envconfig:"CARDAPIO_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// SessionTTL returns the configured admin session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// AdminConfig carries the single admin credential. Exactly one of Password or
// PasswordHash (argon2id) should be set; the hash wins when both are present.
type AdminConfig struct {
	Password     string `envconfig:"CARDAPIO_ADMIN_PASSWORD"`
	PasswordHash string `envconfig:"CARDAPIO_ADMIN_PASSWORD_HASH"`

	ArgonMemoryKB    int `envconfig:"CARDAPIO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CARDAPIO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CARDAPIO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CARDAPIO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CARDAPIO_ARGON_KEY_LEN" default:"32"`
}

// WhatsAppConfig points order intents at the restaurant's contact number.
// Number is intentionally not required at boot: its absence is surfaced as a
// config error when an order is placed, not as a startup crash.
type WhatsAppConfig struct {
	Number string `envconfig:"CARDAPIO_WHATSAPP_NUMBER"`
}

type OrdersConfig struct {
	DecrementRetries int `envconfig:"CARDAPIO_ORDER_DECREMENT_RETRIES" default:"5"`
}

type AuthRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"CARDAPIO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"CARDAPIO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CARDAPIO_AUTO_MIGRATE" default:"false"`
}

func (r RedisConfig) validate() error {
	if r.URL == "" && r.Address == "" {
		return fmt.Errorf("either %s or %s is required", EnvRedisURL, EnvRedisAddr)
	}
	return nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
