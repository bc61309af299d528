package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

// Config is the process configuration, read from the environment
// (after godotenv has loaded .env in main).
type Config struct {
	AppEnv string
	Port   string

	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Auth       AuthConfig
	Leave      LeaveConfig
	Attendance AttendanceConfig

	RBACPolicyPath     string
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MaxRetries      int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
}

type AuthConfig struct {
	Provider            string
	JWTSecret           string
	FirebaseProjectID   string
	FirebaseClientEmail string
	FirebasePrivateKey  string
}

type LeaveConfig struct {
	// Entitlements is the yearly allowance in days per leave type.
	Entitlements map[string]float64
	// AllowReviewOverride lets a reviewer change an already decided request.
	AllowReviewOverride bool
}

type AttendanceConfig struct {
	// Location is the office time zone used for the attendance date and
	// the late cut-off.
	Location *time.Location
	// LateAfter is the offset from local midnight after which a clock-in
	// counts as Late.
	LateAfter time.Duration
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		AppEnv:         env("APP_ENV", "development"),
		Port:           env("PORT", "5000"),
		RBACPolicyPath: getenv("RBAC_POLICY_PATH"),
		Database: DatabaseConfig{
			Host:            env("DB_HOST", "127.0.0.1"),
			User:            env("DB_USER", "root"),
			Password:        env("DB_PASSWORD", getenv("DB_PASS")),
			Name:            env("DB_NAME", "attendance_db"),
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			MaxRetries:      5,
		},
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR"),
			Password: getenv("REDIS_PASSWORD"),
		},
		Kafka: KafkaConfig{
			Broker:        getenv("KAFKA_BROKER"),
			ConsumerGroup: env("KAFKA_CONSUMER_GROUP", "hr-admin-notifications"),
		},
		Auth: AuthConfig{
			Provider:            strings.ToLower(env("AUTH_PROVIDER", AuthProviderFirebase)),
			JWTSecret:           getenv("JWT_SECRET"),
			FirebaseProjectID:   getenv("FIREBASE_PROJECT_ID"),
			FirebaseClientEmail: getenv("FIREBASE_CLIENT_EMAIL"),
			FirebasePrivateKey:  strings.ReplaceAll(getenv("FIREBASE_PRIVATE_KEY"), `\n`, "\n"),
		},
	}

	var err error
	if cfg.Database.Port, err = atoi(env("DB_PORT", "3306"), "DB_PORT"); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = atoi(env("REDIS_DB", "0"), "REDIS_DB"); err != nil {
		return nil, err
	}
	if cfg.Leave.Entitlements, err = ParseEntitlements(env("LEAVE_ENTITLEMENTS", DefaultEntitlements)); err != nil {
		return nil, err
	}
	if cfg.Leave.AllowReviewOverride, err = strconv.ParseBool(env("LEAVE_ALLOW_REVIEW_OVERRIDE", "true")); err != nil {
		return nil, fmt.Errorf("config: LEAVE_ALLOW_REVIEW_OVERRIDE: %w", err)
	}
	if cfg.Attendance.Location, err = time.LoadLocation(env("APP_TIMEZONE", "Local")); err != nil {
		return nil, fmt.Errorf("config: APP_TIMEZONE: %w", err)
	}
	if cfg.Attendance.LateAfter, err = parseClock(env("ATTENDANCE_LATE_AFTER", "09:15")); err != nil {
		return nil, err
	}
	if origins := getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.Provider {
	case AuthProviderFirebase:
		if c.Auth.FirebaseProjectID == "" {
			return fmt.Errorf("config: FIREBASE_PROJECT_ID must be set when AUTH_PROVIDER=firebase")
		}
	case AuthProviderJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("config: JWT_SECRET must be set when AUTH_PROVIDER=jwt")
		}
	default:
		return fmt.Errorf("config: unknown AUTH_PROVIDER %q", c.Auth.Provider)
	}
	if c.Database.Name == "" {
		return fmt.Errorf("config: DB_NAME must be set")
	}
	return nil
}

// DefaultEntitlements mirrors the policy HR used before it was configurable.
const DefaultEntitlements = "Sick=12,Casual=12,Paid=18,Emergency=5"

// ParseEntitlements parses "Type=days,Type=days".
func ParseEntitlements(raw string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, days, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("config: LEAVE_ENTITLEMENTS: %q is not Type=days", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(days), 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("config: LEAVE_ENTITLEMENTS: invalid days for %s", name)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

// MySQLDSN returns the go-sql-driver DSN used by gorm.
func (d DatabaseConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// MigrateURL returns the golang-migrate database URL.
func (d DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%d)/%s?multiStatements=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// parseClock turns "HH:MM" into an offset from midnight.
func parseClock(v string) (time.Duration, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("config: ATTENDANCE_LATE_AFTER: %q is not HH:MM", v)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func atoi(v, key string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
