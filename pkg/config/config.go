package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "SMARTSTOCK"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "SMARTSTOCK_APP_ENV"
	EnvDBDSN  = "SMARTSTOCK_DB_DSN"
	EnvDBHost = "SMARTSTOCK_DB_HOST"
	EnvDBUser = "SMARTSTOCK_DB_USER"
	EnvDBName = "SMARTSTOCK_DB_NAME"

	EnvRedisURL  = "SMARTSTOCK_REDIS_URL"
	EnvRedisAddr = "SMARTSTOCK_REDIS_ADDR"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	DataSource   DataSourceConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Redis.ensureTarget(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env           string `envconfig:"SMARTSTOCK_APP_ENV" required:"true"`
	Port          string `envconfig:"SMARTSTOCK_APP_PORT" required:"true"`
	LogLevel      string `envconfig:"SMARTSTOCK_LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"SMARTSTOCK_LOG_FORMAT" default:"json"`
	LogWarnStack  bool   `envconfig:"SMARTSTOCK_LOG_WARN_STACK" default:"false"`
	DefaultLocale string `envconfig:"SMARTSTOCK_DEFAULT_LOCALE" default:"en"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig configures the stock ledger database. The catalog itself is served
// by the in-memory data source; only the quantity ledger lives in Postgres.
type DBConfig struct {
	DSN string `envconfig:"SMARTSTOCK_DB_DSN"`

	LegacyHost     string `envconfig:"SMARTSTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"SMARTSTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SMARTSTOCK_DB_USER"`
	LegacyPassword string `envconfig:"SMARTSTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"SMARTSTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"SMARTSTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SMARTSTOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SMARTSTOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SMARTSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SMARTSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMARTSTOCK_REDIS_URL"`
	Address      string        `envconfig:"SMARTSTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"SMARTSTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMARTSTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMARTSTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMARTSTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMARTSTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMARTSTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMARTSTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SMARTSTOCK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SMARTSTOCK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SMARTSTOCK_JWT_EXPIRATION_MINUTES" default:"720"`
	SessionTTLMinutes int    `envconfig:"SMARTSTOCK_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

// DataSourceConfig tunes the simulated catalog backend. Latencies mirror the
// fixed delays of the mock API; tests set them to zero for determinism.
type DataSourceConfig struct {
	ListLatency   time.Duration `envconfig:"SMARTSTOCK_DATASOURCE_LIST_LATENCY" default:"500ms"`
	GetLatency    time.Duration `envconfig:"SMARTSTOCK_DATASOURCE_GET_LATENCY" default:"300ms"`
	MutateLatency time.Duration `envconfig:"SMARTSTOCK_DATASOURCE_MUTATE_LATENCY" default:"600ms"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"SMARTSTOCK_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	AlertsTopic string `envconfig:"SMARTSTOCK_PUBSUB_ALERTS_TOPIC"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SMARTSTOCK_AUTO_MIGRATE" default:"false"`
}

// ensureTarget requires a redis URL or the legacy address fields.
func (r *RedisConfig) ensureTarget() error {
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
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
