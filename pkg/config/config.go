package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "cms"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "CMS_DB_DSN"
	EnvDBHost = "CMS_DB_HOST"
	EnvDBUser = "CMS_DB_USER"
	EnvDBName = "CMS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	RateLimit     RateLimitConfig
	PasswordReset PasswordResetConfig
	Sendgrid      SendgridConfig
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
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CMS_APP_ENV" required:"true"`
	Port         string `envconfig:"CMS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CMS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CMS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CMS_DB_DSN"`
	Driver string `envconfig:"CMS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CMS_DB_HOST"`
	LegacyPort     int    `envconfig:"CMS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CMS_DB_USER"`
	LegacyPassword string `envconfig:"CMS_DB_PASSWORD"`
	LegacyName     string `envconfig:"CMS_DB_NAME"`
	LegacySSLMode  string `envconfig:"CMS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CMS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CMS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CMS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CMS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CMS_REDIS_URL"`
	Address      string        `envconfig:"CMS_REDIS_ADDR"`
	Password     string        `envconfig:"CMS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CMS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CMS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CMS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CMS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CMS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CMS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint is configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"CMS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CMS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CMS_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CMS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CMS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CMS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CMS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CMS_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	Window   time.Duration `envconfig:"CMS_RATE_LIMIT_WINDOW" default:"1m"`
	Limit    int           `envconfig:"CMS_RATE_LIMIT_LIMIT" default:"10"`
	UseRedis bool          `envconfig:"CMS_RATE_LIMIT_USE_REDIS" default:"false"`
}

type PasswordResetConfig struct {
	TokenTTL time.Duration `envconfig:"CMS_PASSWORD_RESET_TOKEN_TTL" default:"30m"`
	BaseURL  string        `envconfig:"CMS_PASSWORD_RESET_BASE_URL" default:"http://localhost:3000/reset-password"`
}

type SendgridConfig struct {
	APIKey    string `envconfig:"CMS_SENDGRID_API_KEY"`
	FromEmail string `envconfig:"CMS_SENDGRID_FROM_EMAIL" default:"noreply@brightwell.digital"`
	FromName  string `envconfig:"CMS_SENDGRID_FROM_NAME" default:"Brightwell Digital"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CMS_AUTO_MIGRATE" default:"false"`
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
