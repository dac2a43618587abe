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
	Session       SessionConfig
	Password      PasswordConfig
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
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TECHFINDER_APP_ENV" required:"true"`
	Port         string `envconfig:"TECHFINDER_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TECHFINDER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TECHFINDER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TECHFINDER_DB_DSN"`
	Driver string `envconfig:"TECHFINDER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TECHFINDER_DB_HOST"`
	LegacyPort     int    `envconfig:"TECHFINDER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TECHFINDER_DB_USER"`
	LegacyPassword string `envconfig:"TECHFINDER_DB_PASSWORD"`
	LegacyName     string `envconfig:"TECHFINDER_DB_NAME"`
	LegacySSLMode  string `envconfig:"TECHFINDER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TECHFINDER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TECHFINDER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TECHFINDER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TECHFINDER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver targets SQLite. The DSN is
// then a plain file path (or :memory:).
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"TECHFINDER_REDIS_URL"`
	Address      string        `envconfig:"TECHFINDER_REDIS_ADDR"`
	Password     string        `envconfig:"TECHFINDER_REDIS_PASSWORD"`
	DB           int           `envconfig:"TECHFINDER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TECHFINDER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TECHFINDER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TECHFINDER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TECHFINDER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TECHFINDER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TECHFINDER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TECHFINDER_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TECHFINDER_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type SessionConfig struct {
	CookieName   string `envconfig:"TECHFINDER_SESSION_COOKIE_NAME" default:"techfinder_session"`
	CookieDomain string `envconfig:"TECHFINDER_SESSION_COOKIE_DOMAIN"`
	CookieSecure bool   `envconfig:"TECHFINDER_SESSION_COOKIE_SECURE" default:"false"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TECHFINDER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TECHFINDER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TECHFINDER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TECHFINDER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TECHFINDER_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow             time.Duration `envconfig:"TECHFINDER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIdentifierLimit    int           `envconfig:"TECHFINDER_AUTH_RATE_LIMIT_LOGIN_IDENTIFIER_LIMIT" default:"5"`
	LoginIPLimit            int           `envconfig:"TECHFINDER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow          time.Duration `envconfig:"TECHFINDER_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIdentifierLimit int           `envconfig:"TECHFINDER_AUTH_RATE_LIMIT_REGISTER_IDENTIFIER_LIMIT" default:"3"`
	RegisterIPLimit         int           `envconfig:"TECHFINDER_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TECHFINDER_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
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
