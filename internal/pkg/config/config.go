package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, etc.)
// - default: Values common across all environments (timezone, timeout, etc.)
// An optional .env file is loaded first; real environment variables win.
// -----------------------------------------------------------------------------

const (
	StoreDriverPostgres = "postgres"
	StoreDriverJSON     = "json"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Admin     AdminConfig
	Studio    StudioConfig
	Mail      MailConfig
	Calendar  CalendarConfig
	Rabbit    RabbitConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Worker    WorkerConfig
}

// ServerConfig.PublicBaseURL prefixes the self-service links sent to clients.
type ServerConfig struct {
	Port          string `envconfig:"PORT" required:"true"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:3000"`
}

type StoreConfig struct {
	Driver         string `envconfig:"STORE_DRIVER" default:"postgres"`
	DataDir        string `envconfig:"STORE_DATA_DIR" default:"./data"`
	MigrationsFile string `envconfig:"STORE_MIGRATIONS_FILE" default:"./migrations/001_initial_schema.sql"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After,X-RateLimit-Limit,X-RateLimit-Remaining"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Africa/Nairobi"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"10800"` // 3*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"12h"`
}

type CookieConfig struct {
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAMESITE" default:"lax"`
	Domain   string `envconfig:"COOKIE_DOMAIN"`
}

// AdminConfig lists the console accounts. Passwords are bcrypt hashes.
type AdminConfig struct {
	Email             string `envconfig:"ADMIN_EMAIL" required:"true"`
	PasswordHash      string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`
	StaffEmail        string `envconfig:"STAFF_EMAIL"`
	StaffPasswordHash string `envconfig:"STAFF_PASSWORD_HASH"`
}

type StudioConfig struct {
	Name                           string `envconfig:"STUDIO_NAME" default:"LashDiary"`
	TimeZone                       string `envconfig:"STUDIO_TIMEZONE" default:"Africa/Nairobi"`
	DefaultCancellationWindowHours int    `envconfig:"STUDIO_CANCELLATION_WINDOW_HOURS" default:"72"`
	DefaultServiceDurationMin      int    `envconfig:"STUDIO_DEFAULT_DURATION_MIN" default:"120"`
}

// MailConfig: an empty Host logs messages instead of sending them.
type MailConfig struct {
	Host     string `envconfig:"MAIL_HOST"`
	Port     int    `envconfig:"MAIL_PORT" default:"587"`
	Username string `envconfig:"MAIL_USERNAME"`
	Password string `envconfig:"MAIL_PASSWORD"`
	From     string `envconfig:"MAIL_FROM" default:"bookings@lashdiary.local"`
	TLS      bool   `envconfig:"MAIL_TLS" default:"true"`
}

// CalendarConfig: an empty CalendarID disables calendar sync.
type CalendarConfig struct {
	CredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE"`
	CalendarID      string `envconfig:"GOOGLE_CALENDAR_ID"`
}

// RabbitConfig: an empty URL logs events instead of publishing them.
type RabbitConfig struct {
	URL      string `envconfig:"RABBITMQ_URL"`
	Exchange string `envconfig:"RABBITMQ_EXCHANGE" default:"lashdiary.events"`
}

// RedisConfig: an empty Addr falls back to an in-process rate limiter.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	Enabled        bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Capacity       int           `envconfig:"RATE_LIMIT_CAPACITY" default:"30"`
	RefillTokens   int           `envconfig:"RATE_LIMIT_REFILL_TOKENS" default:"1"`
	RefillInterval time.Duration `envconfig:"RATE_LIMIT_REFILL_INTERVAL" default:"2s"`
	TTL            time.Duration `envconfig:"RATE_LIMIT_TTL" default:"10m"`
	Prefix         string        `envconfig:"RATE_LIMIT_PREFIX" default:"rl"`
}

// WorkerConfig.ClaimLease is how long a claimed job may stay in processing
// before another poll takes it over. Zero means twice JobTimeout.
type WorkerConfig struct {
	Enabled      bool          `envconfig:"WORKER_ENABLED" default:"true"`
	PollInterval time.Duration `envconfig:"WORKER_POLL_INTERVAL" default:"5s"`
	BatchSize    int           `envconfig:"WORKER_BATCH_SIZE" default:"20"`
	MaxAttempts  int           `envconfig:"WORKER_MAX_ATTEMPTS" default:"5"`
	BaseBackoff  time.Duration `envconfig:"WORKER_BASE_BACKOFF" default:"30s"`
	JobTimeout   time.Duration `envconfig:"WORKER_JOB_TIMEOUT" default:"20s"`
	ClaimLease   time.Duration `envconfig:"WORKER_CLAIM_LEASE" default:"0s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c StudioConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid studio time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return errors.New("DB_USER and DB_NAME are required for the postgres store")
		}
	case StoreDriverJSON:
		if c.Store.DataDir == "" {
			return errors.New("STORE_DATA_DIR is required for the json store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Studio.DefaultCancellationWindowHours <= 0 {
		return errors.New("STUDIO_CANCELLATION_WINDOW_HOURS must be positive")
	}
	if c.Studio.DefaultServiceDurationMin <= 0 {
		return errors.New("STUDIO_DEFAULT_DURATION_MIN must be positive")
	}
	if _, err := c.Studio.Location(); err != nil {
		return err
	}
	return nil
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:          "8889", // Test port
			PublicBaseURL: "https://lashdiary.test",
		},
		Store: StoreConfig{
			Driver: StoreDriverPostgres,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 4,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Africa/Nairobi",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 10800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-testing-only",
			Duration: time.Hour,
		},
		Cookie: CookieConfig{
			SameSite: "lax",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		},
		Studio: StudioConfig{
			Name:                           "LashDiary",
			TimeZone:                       "Africa/Nairobi",
			DefaultCancellationWindowHours: 72,
			DefaultServiceDurationMin:      120,
		},
		Worker: WorkerConfig{
			PollInterval: time.Second,
			BatchSize:    10,
			MaxAttempts:  3,
			BaseBackoff:  time.Second,
			JobTimeout:   5 * time.Second,
		},
	}
}
