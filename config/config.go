package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL    string
	SiteOrigin string

	ChromeBin     string
	UserDataDir   string
	ChromeProfile string
	Headless      bool

	// ListingWaitSec is the upper bound of the randomized delay between
	// discovery-page fetches; RecordWaitSec is the fixed delay between
	// per-record fetches in the resolve and detail stages.
	ListingWaitSec float64
	RecordWaitSec  float64

	OutputDir string
	Stage     string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BaseURL:    getEnv("BASE_URL", "https://www.skool.com/discovery"),
		SiteOrigin: getEnv("SITE_ORIGIN", "https://www.skool.com"),

		ChromeBin:     getEnv("CHROME_BIN", ""),
		UserDataDir:   getEnv("CHROME_USER_DATA_DIR", ""),
		ChromeProfile: getEnv("CHROME_PROFILE", "Profile 1"),
		Headless:      getEnvBool("HEADLESS", true),

		ListingWaitSec: getEnvFloat("LISTING_WAIT_SEC", 3.0),
		RecordWaitSec:  getEnvFloat("RECORD_WAIT_SEC", 1.5),

		OutputDir: getEnv("OUTPUT_DIR", "./output"),
		Stage:     getEnv("STAGE", "all"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "skool_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// Stage output files, in pipeline order. Names match the files the
// downstream analysis already consumes.
func (c *Config) ListingsPath() string { return filepath.Join(c.OutputDir, "main_content_data.csv") }

func (c *Config) ProfilesPath() string {
	return filepath.Join(c.OutputDir, "data_with_creator_profiles.csv")
}

func (c *Config) DetailsPath() string { return filepath.Join(c.OutputDir, "full_data.csv") }

func (c *Config) FinalPath() string { return filepath.Join(c.OutputDir, "preprocessed_data.csv") }

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
