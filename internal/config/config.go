package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	CatalogPath string

	RedisHost     string
	RedisPassword string

	SessionSecret  string
	AllowedOrigins []string

	ElasticURL      string
	ElasticUser     string
	ElasticPassword string
	ElasticIndex    string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
	MinIORegion    string
	ImageBaseURL   string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	ContactFrom  string
	ContactTo    string

	WhatsAppNumber        string
	Installments          int
	FreeShippingThreshold float64

	RecommendPolicy string
	RandomSeed      int64
	ChatRateLimit   int
}

// Load reads .env when present, then builds the Config from the
// environment. Missing variables fall back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}
	return FromEnv()
}

// FromEnv builds the Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CatalogPath: getEnv("CATALOG_PATH", "data/products.json"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SessionSecret:  getEnv("SESSION_SECRET", "padelmania-dev-secret"),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),

		ElasticURL:      os.Getenv("ELASTIC_URL"),
		ElasticUser:     os.Getenv("ELASTIC_USER"),
		ElasticPassword: os.Getenv("ELASTIC_PASSWORD"),
		ElasticIndex:    getEnv("ELASTIC_INDEX", "products"),

		MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "products"),
		MinIOUseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		MinIORegion:    getEnv("MINIO_REGION", "us-east-1"),
		ImageBaseURL:   getEnv("IMAGE_BASE_URL", "/assets/images/"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		ContactFrom:  getEnv("CONTACT_FROM", "no-reply@padelmania.com"),
		ContactTo:    getEnv("CONTACT_TO", "info@padelmania.com"),

		WhatsAppNumber:        getEnv("WHATSAPP_NUMBER", "5491234567890"),
		Installments:          getEnvAsInt("INSTALLMENTS", 6),
		FreeShippingThreshold: getEnvAsFloat("FREE_SHIPPING_THRESHOLD", 50000),

		RecommendPolicy: getEnv("RECOMMEND_POLICY", "first"),
		RandomSeed:      int64(getEnvAsInt("RANDOM_SEED", 0)),
		ChatRateLimit:   getEnvAsInt("CHAT_RATE_LIMIT", 30),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Installments <= 0 {
		return fmt.Errorf("INSTALLMENTS must be positive, got %d", c.Installments)
	}
	if c.FreeShippingThreshold <= 0 {
		return fmt.Errorf("FREE_SHIPPING_THRESHOLD must be positive, got %v", c.FreeShippingThreshold)
	}
	if c.ChatRateLimit < 0 {
		return fmt.Errorf("CHAT_RATE_LIMIT must not be negative")
	}
	switch c.RecommendPolicy {
	case "first", "random":
	default:
		return fmt.Errorf("RECOMMEND_POLICY must be first or random, got %q", c.RecommendPolicy)
	}
	if c.IsProduction() && c.SessionSecret == "padelmania-dev-secret" {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) RedisEnabled() bool   { return c.RedisHost != "" }
func (c *Config) ElasticEnabled() bool { return c.ElasticURL != "" }
func (c *Config) MinIOEnabled() bool   { return c.MinIOEndpoint != "" }
func (c *Config) SMTPEnabled() bool    { return c.SMTPHost != "" }

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
