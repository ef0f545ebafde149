package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	UploadDir      string
	AnnotationsDir string
	DatabaseURL    string
	AzureEndpoint  string
	AzureKey       string
	MaxUploadMB    int64
	SessionTTL     time.Duration
	SessionSweep   string
}

// Load reads .env files (if any) and then the environment.
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		UploadDir:      getEnv("UPLOAD_DIR", "./public/invoices"),
		AnnotationsDir: getEnv("ANNOTATIONS_DIR", "./public/annotations"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AzureEndpoint:  os.Getenv("AZURE_CV_ENDPOINT"),
		AzureKey:       os.Getenv("AZURE_CV_KEY"),
		MaxUploadMB:    getEnvInt("MAX_UPLOAD_MB", 50),
		SessionTTL:     getEnvDuration("SESSION_TTL", 2*time.Hour),
		SessionSweep:   getEnv("SESSION_SWEEP", "@every 10m"),
	}
}

// OCREnabled reports whether Azure credentials are configured.
func (c *Config) OCREnabled() bool {
	return c.AzureEndpoint != "" && c.AzureKey != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("Ignoring invalid %s=%q", key, val)
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		log.Printf("Ignoring invalid %s=%q", key, val)
		return defaultVal
	}
	return d
}
