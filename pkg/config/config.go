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
	APIRateLimit  APIRateLimitConfig
	SMTP          SMTPConfig
	Import        ImportConfig
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
	Env          string `envconfig:"RIGTRACK_APP_ENV" required:"true"`
	Port         string `envconfig:"RIGTRACK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RIGTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RIGTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RIGTRACK_DB_DSN"`
	Driver string `envconfig:"RIGTRACK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RIGTRACK_DB_HOST"`
	LegacyPort     int    `envconfig:"RIGTRACK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RIGTRACK_DB_USER"`
	LegacyPassword string `envconfig:"RIGTRACK_DB_PASSWORD"`
	LegacyName     string `envconfig:"RIGTRACK_DB_NAME"`
	LegacySSLMode  string `envconfig:"RIGTRACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RIGTRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RIGTRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RIGTRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RIGTRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RIGTRACK_REDIS_URL"`
	Address      string        `envconfig:"RIGTRACK_REDIS_ADDR"`
	Password     string        `envconfig:"RIGTRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"RIGTRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RIGTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RIGTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RIGTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RIGTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RIGTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RIGTRACK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RIGTRACK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"RIGTRACK_JWT_EXPIRATION_MINUTES" default:"480"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RIGTRACK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RIGTRACK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RIGTRACK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RIGTRACK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RIGTRACK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"RIGTRACK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"RIGTRACK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"RIGTRACK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type APIRateLimitConfig struct {
	Window  time.Duration `envconfig:"RIGTRACK_API_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"RIGTRACK_API_RATE_LIMIT_IP_LIMIT" default:"300"`
}

type SMTPConfig struct {
	Host     string `envconfig:"RIGTRACK_SMTP_HOST"`
	Port     int    `envconfig:"RIGTRACK_SMTP_PORT" default:"587"`
	User     string `envconfig:"RIGTRACK_SMTP_USER"`
	Password string `envconfig:"RIGTRACK_SMTP_PASSWORD"`
	From     string `envconfig:"RIGTRACK_SMTP_FROM"`
}

// Addr returns the host:port dial target for the SMTP server.
func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type ImportConfig struct {
	MaxUploadMB int `envconfig:"RIGTRACK_MAX_UPLOAD_MB" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"RIGTRACK_AUTO_MIGRATE" default:"false"`
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
