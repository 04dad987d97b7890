package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata" // APP_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultEntities  = "KSS,KSP,KSU,KSB,KSM"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Bookkeeping
	Entities          []domain.EntityCode
	Location          *time.Location
	ApprovalThreshold decimal.Decimal

	// HTTP
	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule/limiter formatted rate, e.g. "5-M"
	RedisURL           string

	// Printing and report archive
	CompanyName         string
	ChromeNoSandbox     bool
	PDFEnabled          bool
	ChromeRemoteURL     string
	PDFTimeout          time.Duration
	ReportArchiveBucket string
	S3Region            string
	S3Endpoint          string
	S3AccessKeyID       string
	S3SecretAccessKey   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "kasbook")
	viper.SetDefault("ENTITIES", defaultEntities)
	viper.SetDefault("APP_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("PETTY_CASH_APPROVAL_THRESHOLD", "1000000")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("COMPANY_NAME", "Kasbook")
	viper.SetDefault("PDF_ENABLED", false)
	viper.SetDefault("CHROME_NO_SANDBOX", false)
	viper.SetDefault("CHROME_REMOTE_URL", "")
	viper.SetDefault("PDF_TIMEOUT", "30s")
	viper.SetDefault("REPORT_ARCHIVE_BUCKET", "")
	viper.SetDefault("S3_REGION", "ap-southeast-3")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY_ID", "")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.Entities, err = domain.ParseEntityCodes(viper.GetString("ENTITIES"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENTITIES: %w", err)
	}
	if len(cfg.Entities) == 0 {
		return nil, fmt.Errorf("invalid ENTITIES: at least one entity code is required")
	}

	tz := viper.GetString("APP_TIMEZONE")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
	}

	cfg.ApprovalThreshold, err = decimal.NewFromString(viper.GetString("PETTY_CASH_APPROVAL_THRESHOLD"))
	if err != nil {
		return nil, fmt.Errorf("invalid PETTY_CASH_APPROVAL_THRESHOLD: %w", err)
	}
	if cfg.ApprovalThreshold.IsNegative() {
		return nil, fmt.Errorf("invalid PETTY_CASH_APPROVAL_THRESHOLD: must not be negative")
	}

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")

	cfg.CompanyName = viper.GetString("COMPANY_NAME")
	cfg.PDFEnabled = viper.GetBool("PDF_ENABLED")
	cfg.ChromeNoSandbox = viper.GetBool("CHROME_NO_SANDBOX")
	cfg.ChromeRemoteURL = viper.GetString("CHROME_REMOTE_URL")
	pdfTimeoutStr := viper.GetString("PDF_TIMEOUT")
	cfg.PDFTimeout, err = time.ParseDuration(pdfTimeoutStr)
	if err != nil {
		cfg.PDFTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for PDF_TIMEOUT ('%s'). Defaulting to %s.\n", pdfTimeoutStr, cfg.PDFTimeout.String())
	}

	cfg.ReportArchiveBucket = viper.GetString("REPORT_ARCHIVE_BUCKET")
	cfg.S3Region = viper.GetString("S3_REGION")
	cfg.S3Endpoint = viper.GetString("S3_ENDPOINT")
	cfg.S3AccessKeyID = viper.GetString("S3_ACCESS_KEY_ID")
	cfg.S3SecretAccessKey = viper.GetString("S3_SECRET_ACCESS_KEY")

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
