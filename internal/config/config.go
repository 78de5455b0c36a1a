package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	AllowOrigins    []string
	LogLevel        string
	LogstashTCPAddr string

	Database DatabaseConfig

	JWTSecret string
	JWTTTL    time.Duration

	PasswordResetTTL       time.Duration
	PasswordResetOTPLength int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPUseTLS   bool

	// MailDelivery is "smtp" to send inline or "queue" to publish to RabbitMQ
	// for the mail-worker command.
	MailDelivery string
	RabbitMQURL  string
	MailQueue    string

	StorageBackend     string
	UploadDir          string
	UploadPublicPrefix string
	UploadMaxBytes     int64

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
	MinIOBucket    string
	MinIOPublicURL string

	GCSBucket          string
	GCSProjectID       string
	GCSCredentialsFile string
	GCSPublicURL       string

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	CategoryCacheTTL time.Duration

	AuthRateLimit        float64
	AuthRateBurst        int
	ProtectCatalogWrites bool
}

type DatabaseConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL assembled from
// the individual DB_* settings.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		User:   url.UserPassword(d.User, d.Password),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	otpLen := 6
	if v, err := strconv.Atoi(getenv("PASSWORD_RESET_OTP_LENGTH", "6")); err == nil && v > 0 {
		otpLen = v
	}

	uploadMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("UPLOAD_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		uploadMax = v
	}

	return Config{
		Port:            getenv("PORT", "5000"),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		Database: loadDatabase(),

		JWTSecret: must("JWT_SECRET"),
		JWTTTL:    getduration("JWT_TTL", time.Hour),

		PasswordResetTTL:       getduration("PASSWORD_RESET_TTL", 15*time.Minute),
		PasswordResetOTPLength: otpLen,

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", getenv("SMTP_USERNAME", "")),
		SMTPUseTLS:   getenv("SMTP_USE_TLS", "false") == "true",

		MailDelivery: strings.ToLower(getenv("MAIL_DELIVERY", "smtp")),
		RabbitMQURL:  getenv("RABBITMQ_URL", ""),
		MailQueue:    getenv("MAIL_QUEUE", "password-reset-mail"),

		StorageBackend:     strings.ToLower(getenv("STORAGE_BACKEND", "local")),
		UploadDir:          getenv("UPLOAD_DIR", "upload"),
		UploadPublicPrefix: getenv("UPLOAD_PUBLIC_PREFIX", "upload"),
		UploadMaxBytes:     uploadMax,

		MinIOEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucket:    getenv("MINIO_BUCKET", "bookstore-images"),
		MinIOPublicURL: getenv("MINIO_PUBLIC_URL", ""),

		GCSBucket:          getenv("GCS_BUCKET", ""),
		GCSProjectID:       getenv("GCS_PROJECT_ID", ""),
		GCSCredentialsFile: getenv("GCS_CREDENTIALS_FILE", ""),
		GCSPublicURL:       getenv("GCS_PUBLIC_URL", ""),

		RedisAddr:        getenv("REDIS_ADDR", ""),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		RedisDB:          getint("REDIS_DB", 0),
		CategoryCacheTTL: getduration("CATEGORY_CACHE_TTL", 5*time.Minute),

		AuthRateLimit:        getfloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst:        getint("AUTH_RATE_BURST", 10),
		ProtectCatalogWrites: getenv("PROTECT_CATALOG_WRITES", "false") == "true",
	}
}

func loadDatabase() DatabaseConfig {
	db := DatabaseConfig{
		Driver:   getenv("DB_DRIVER", "pgx"),
		URL:      getenv("DATABASE_URL", ""),
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getint("DB_PORT", 5432),
		User:     getenv("DB_USER", "postgres"),
		Password: getenv("DB_PASSWORD", ""),
		Name:     getenv("DB_NAME", ""),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
	if db.URL == "" && db.Name == "" {
		panic("missing env: DATABASE_URL or DB_NAME")
	}
	return db
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v, err := strconv.Atoi(getenv(k, "")); err == nil {
		return v
	}
	return d
}

func getfloat(k string, d float64) float64 {
	if v, err := strconv.ParseFloat(getenv(k, ""), 64); err == nil {
		return v
	}
	return d
}

func getduration(k string, d time.Duration) time.Duration {
	if v, err := time.ParseDuration(getenv(k, "")); err == nil && v > 0 {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
