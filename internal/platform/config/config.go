package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration. It is loaded once at start up
// and passed explicitly to whatever needs it.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string
	// LockTimeout bounds every row lock wait inside a unit of work.
	LockTimeout time.Duration

	JWTSecret string
	JWTIssuer string

	CORSAllowOrigins []string
	RateLimit        string // ulule formatted rate, e.g. "100-M"

	RedisAddr      string
	RedisDB        int
	IdempotencyTTL time.Duration

	GCSBucketName       string
	GCSBasePath         string
	GoogleCredentials   string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	SignedURLExpiration time.Duration

	RenderWorkers int
	CompanyName   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	return load(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("LOCK_TIMEOUT", "5s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "prt-backend")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL", "24h")
	v.SetDefault("GCS_BUCKET_NAME", "")
	v.SetDefault("GCS_BASE_PATH", "prt")
	v.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")
	v.SetDefault("SIGNED_URL_EXPIRATION", "15m")
	v.SetDefault("RENDER_WORKERS", 2)
	v.SetDefault("COMPANY_NAME", "")
}

func load(v *viper.Viper) *Config {
	setDefaults(v)

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	cfg.StorageDriver = strings.ToLower(v.GetString("STORAGE_DRIVER"))
	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER '%s'. Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPostgres)
		cfg.StorageDriver = StorageDriverPostgres
	}
	if cfg.StorageDriver == StorageDriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.LockTimeout = durationOrDefault(v, "LOCK_TIMEOUT", 5*time.Second)

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.CORSAllowOrigins = splitList(v.GetString("CORS_ALLOW_ORIGINS"))
	cfg.RateLimit = v.GetString("RATE_LIMIT")

	cfg.RedisAddr = v.GetString("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Idempotency keys will not be enforced.")
	}
	cfg.RedisDB = v.GetInt("REDIS_DB")
	cfg.IdempotencyTTL = durationOrDefault(v, "IDEMPOTENCY_TTL", 24*time.Hour)

	cfg.GCSBucketName = v.GetString("GCS_BUCKET_NAME")
	cfg.GCSBasePath = strings.Trim(v.GetString("GCS_BASE_PATH"), "/")
	cfg.GoogleCredentials = v.GetString("GOOGLE_APPLICATION_CREDENTIALS")
	if cfg.GCSBucketName == "" {
		log.Println("Warning: GCS_BUCKET_NAME not set. Using the in-memory object store.")
	}
	cfg.SignedURLExpiration = durationOrDefault(v, "SIGNED_URL_EXPIRATION", 15*time.Minute)

	cfg.RenderWorkers = v.GetInt("RENDER_WORKERS")
	if cfg.RenderWorkers < 1 {
		cfg.RenderWorkers = 1
	}
	cfg.CompanyName = v.GetString("COMPANY_NAME")

	return cfg
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
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
