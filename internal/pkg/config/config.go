package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, bot credentials), security settings
// - default: Values common across all environments (timezone, intervals, limits), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Discord   DiscordConfig
	Reminder  ReminderConfig
	Workflow  WorkflowConfig
	Access    AccessConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"PST"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-28800"` // -8*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

// Environment selects which bot credentials the process serves with.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

func (e Environment) Valid() bool {
	return e == EnvDevelopment || e == EnvProduction
}

type DiscordConfig struct {
	Environment      Environment `envconfig:"DISCORD_ENV" default:"development"`
	Token            string      `envconfig:"DISCORD_TOKEN"`
	ApplicationID    string      `envconfig:"DISCORD_APPLICATION_ID"`
	PublicKey        string      `envconfig:"DISCORD_PUBLIC_KEY"`
	TokenDev         string      `envconfig:"DISCORD_TOKEN_DEV"`
	ApplicationIDDev string      `envconfig:"DISCORD_APPLICATION_ID_DEV"`
	PublicKeyDev     string      `envconfig:"DISCORD_PUBLIC_KEY_DEV"`
}

// Credentials is one bot identity.
type Credentials struct {
	Token         string
	ApplicationID string
	PublicKey     string
}

func (c DiscordConfig) CredentialsFor(env Environment) (Credentials, bool) {
	var creds Credentials
	switch env {
	case EnvProduction:
		creds = Credentials{Token: c.Token, ApplicationID: c.ApplicationID, PublicKey: c.PublicKey}
	case EnvDevelopment:
		creds = Credentials{Token: c.TokenDev, ApplicationID: c.ApplicationIDDev, PublicKey: c.PublicKeyDev}
	default:
		return Credentials{}, false
	}
	return creds, creds.Token != ""
}

type ReminderConfig struct {
	TimeZone          string          `envconfig:"REMINDER_TIMEZONE" default:"America/Los_Angeles"`
	FollowUpIntervals []time.Duration `envconfig:"REMINDER_FOLLOW_UP_INTERVALS" default:"1h,2h,4h,8h,12h"`
	MetadataTTL       time.Duration   `envconfig:"REMINDER_METADATA_TTL" default:"8760h"`
	OriginCacheTTL    time.Duration   `envconfig:"REMINDER_ORIGIN_CACHE_TTL" default:"300s"`
	ListLimit         int             `envconfig:"REMINDER_LIST_LIMIT" default:"10"`
	PreviewLength     int             `envconfig:"REMINDER_PREVIEW_LENGTH" default:"100"`
}

type WorkflowConfig struct {
	PollInterval    time.Duration `envconfig:"WORKFLOW_POLL_INTERVAL" default:"1s"`
	BatchSize       int           `envconfig:"WORKFLOW_BATCH_SIZE" default:"20"`
	Concurrency     int           `envconfig:"WORKFLOW_CONCURRENCY" default:"8"`
	LeaseDuration   time.Duration `envconfig:"WORKFLOW_LEASE_DURATION" default:"2m"`
	StepTimeout     time.Duration `envconfig:"WORKFLOW_STEP_TIMEOUT" default:"30s"`
	MaxAttempts     int           `envconfig:"WORKFLOW_MAX_ATTEMPTS" default:"8"`
	RetryInitial    time.Duration `envconfig:"WORKFLOW_RETRY_INITIAL" default:"5s"`
	RetryMax        time.Duration `envconfig:"WORKFLOW_RETRY_MAX" default:"10m"`
	RunRetention    time.Duration `envconfig:"WORKFLOW_RUN_RETENTION" default:"720h"`
	JanitorSchedule string        `envconfig:"WORKFLOW_JANITOR_SCHEDULE" default:"@hourly"`
}

type AccessConfig struct {
	AllowedUserIDs []string `envconfig:"ACCESS_ALLOWED_USER_IDS"`
}

type RateLimitConfig struct {
	RequestsPerMinute int           `envconfig:"RATE_LIMIT_RPM" default:"60"`
	Burst             int           `envconfig:"RATE_LIMIT_BURST" default:"10"`
	EntryTTL          time.Duration `envconfig:"RATE_LIMIT_ENTRY_TTL" default:"15m"`
	MaxEntries        int           `envconfig:"RATE_LIMIT_MAX_ENTRIES" default:"10000"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if !cfg.Discord.Environment.Valid() {
		return Config{}, fmt.Errorf("invalid DISCORD_ENV %q", cfg.Discord.Environment)
	}
	if len(cfg.Reminder.FollowUpIntervals) == 0 {
		return Config{}, fmt.Errorf("REMINDER_FOLLOW_UP_INTERVALS must not be empty")
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "PST",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -28800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		Discord: DiscordConfig{
			Environment: EnvDevelopment,
			TokenDev:    "test-token",
		},
		Reminder: ReminderConfig{
			TimeZone:          "America/Los_Angeles",
			FollowUpIntervals: []time.Duration{time.Hour, 2 * time.Hour, 4 * time.Hour, 8 * time.Hour, 12 * time.Hour},
			MetadataTTL:       365 * 24 * time.Hour,
			OriginCacheTTL:    300 * time.Second,
			ListLimit:         10,
			PreviewLength:     100,
		},
		Workflow: WorkflowConfig{
			PollInterval:    time.Second,
			BatchSize:       10,
			Concurrency:     2,
			LeaseDuration:   time.Minute,
			StepTimeout:     10 * time.Second,
			MaxAttempts:     3,
			RetryInitial:    time.Second,
			RetryMax:        time.Minute,
			RunRetention:    24 * time.Hour,
			JanitorSchedule: "@hourly",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 600,
			Burst:             100,
			EntryTTL:          time.Minute,
			MaxEntries:        100,
		},
	}
}
