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
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
	Bot           BotConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RESTOS_APP_ENV" required:"true"`
	Port         string `envconfig:"RESTOS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RESTOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RESTOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RESTOS_DB_DSN"`
	Driver string `envconfig:"RESTOS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"RESTOS_DB_HOST"`
	Port     int    `envconfig:"RESTOS_DB_PORT" default:"5432"`
	User     string `envconfig:"RESTOS_DB_USER"`
	Password string `envconfig:"RESTOS_DB_PASSWORD"`
	Name     string `envconfig:"RESTOS_DB_NAME"`
	SSLMode  string `envconfig:"RESTOS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RESTOS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RESTOS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RESTOS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RESTOS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RESTOS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RESTOS_REDIS_ADDR"`
	Password     string        `envconfig:"RESTOS_REDIS_PASSWORD"`
	DB           int           `envconfig:"RESTOS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RESTOS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RESTOS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RESTOS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RESTOS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RESTOS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"RESTOS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"RESTOS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"RESTOS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"RESTOS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RESTOS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RESTOS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RESTOS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RESTOS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RESTOS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"RESTOS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"RESTOS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"RESTOS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"RESTOS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"RESTOS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"RESTOS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"RESTOS_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"RESTOS_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrderEventsTopic        string `envconfig:"RESTOS_PUBSUB_ORDER_EVENTS_TOPIC" default:"restos-order-events"`
	OrderEventsSubscription string `envconfig:"RESTOS_PUBSUB_ORDER_EVENTS_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int    `envconfig:"RESTOS_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int    `envconfig:"RESTOS_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int    `envconfig:"RESTOS_OUTBOX_MAX_ATTEMPTS" default:"10"`
	MetricsPort    string `envconfig:"RESTOS_OUTBOX_METRICS_PORT" default:"9091"`
}

type BotConfig struct {
	FallbackMessage string `envconfig:"RESTOS_BOT_FALLBACK_MESSAGE" default:"No entendimos tu mensaje. Escribe *menú* para ver opciones."`
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
	for _, env := range requiredDBEnvVars {
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
