package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"freightflow/domain"
)

type Config struct {
	Port           string
	DBType         string
	PostgresURL    string
	PostgresPool   PoolConfig
	MongoURL       string
	MongoDB        string
	MigrationsPath string

	OverridePolicy        domain.OverridePolicy
	DefaultAdvancePercent decimal.Decimal
	InsuranceWarningDays  int
	CatalogFile           string

	StorageType string
	StorageDir  string
	R2          R2Config

	PDFEngine  string
	CORSOrigin string
}

// PoolConfig sizes the Postgres connection pool. Zero values leave the
// driver defaults of the postgres package in place.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type R2Config struct {
	Bucket          string
	AccountID       string
	PublicURL       string
	AccessKeyID     string
	SecretAccessKey string
}

// LoadConfig reads .env when present, then the process environment.
// Malformed values are returned as errors rather than silently defaulted.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, so tests can feed a map.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:           get("PORT", "8080"),
		DBType:         strings.ToLower(get("DB_TYPE", "memory")),
		PostgresURL:    getenv("POSTGRES_URL"),
		MongoURL:       getenv("MONGO_URL"),
		MongoDB:        get("MONGO_DB", "freightflow"),
		MigrationsPath: get("MIGRATIONS_PATH", "file://db/migrations"),
		CatalogFile:    getenv("CATALOG_FILE"),
		StorageType:    strings.ToLower(get("STORAGE_TYPE", "local")),
		StorageDir:     get("STORAGE_DIR", "./lr-copies"),
		R2: R2Config{
			Bucket:          getenv("R2_BUCKET"),
			AccountID:       getenv("R2_ACCOUNT_ID"),
			PublicURL:       getenv("R2_PUBLIC_URL"),
			AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		},
		PDFEngine:  strings.ToLower(get("PDF_ENGINE", "fpdf")),
		CORSOrigin: get("CORS_ORIGIN", "*"),
	}

	policy, err := domain.ParseOverridePolicy(getenv("FREIGHT_OVERRIDE_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("FREIGHT_OVERRIDE_POLICY: %w", err)
	}
	cfg.OverridePolicy = policy

	pct, err := decimal.NewFromString(get("DEFAULT_ADVANCE_PERCENT", "30"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_ADVANCE_PERCENT: %w", err)
	}
	cfg.DefaultAdvancePercent = pct

	days, err := strconv.Atoi(get("INSURANCE_WARNING_DAYS", strconv.Itoa(domain.InsuranceWarningDays)))
	if err != nil {
		return nil, fmt.Errorf("INSURANCE_WARNING_DAYS: %w", err)
	}
	cfg.InsuranceWarningDays = days

	for key, dst := range map[string]*int{
		"DB_MAX_OPEN_CONNS": &cfg.PostgresPool.MaxOpenConns,
		"DB_MAX_IDLE_CONNS": &cfg.PostgresPool.MaxIdleConns,
	} {
		if v := get(key, ""); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}
	if v := get("DB_CONN_MAX_LIFETIME", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
		}
		cfg.PostgresPool.ConnMaxLifetime = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBType {
	case "memory":
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when DB_TYPE=postgres")
		}
	case "mongo":
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required when DB_TYPE=mongo")
		}
	default:
		return fmt.Errorf("DB_TYPE %q not supported", c.DBType)
	}

	switch c.StorageType {
	case "local":
	case "r2":
		if c.R2.Bucket == "" || c.R2.AccountID == "" {
			return fmt.Errorf("R2_BUCKET and R2_ACCOUNT_ID are required when STORAGE_TYPE=r2")
		}
	default:
		return fmt.Errorf("STORAGE_TYPE %q not supported", c.StorageType)
	}

	if c.PDFEngine != "fpdf" && c.PDFEngine != "chrome" {
		return fmt.Errorf("PDF_ENGINE %q not supported", c.PDFEngine)
	}
	if err := domain.CheckPercentage(c.DefaultAdvancePercent); err != nil {
		return fmt.Errorf("DEFAULT_ADVANCE_PERCENT: %w", err)
	}
	if c.PostgresPool.MaxOpenConns < 0 || c.PostgresPool.MaxIdleConns < 0 || c.PostgresPool.ConnMaxLifetime < 0 {
		return fmt.Errorf("DB pool settings must not be negative")
	}
	if c.InsuranceWarningDays < 0 {
		return fmt.Errorf("INSURANCE_WARNING_DAYS must not be negative")
	}
	return nil
}
