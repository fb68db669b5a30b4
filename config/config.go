package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the collaborator settings loaded from environment variables.
// Nothing here reaches the generator: output depends only on the weeks and
// seed flags.
type Config struct {
	CSVOutputPath string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MySQLDSN   string
	SQLitePath string

	BatchSize    int
	MaxRetries   int
	ShowProgress bool
	ShowReport   bool

	LogLevel  string
	LogFormat string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return fromEnv()
}

func fromEnv() *Config {
	return &Config{
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "data/raw_marketing_data.csv"),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "mmm"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "mmm"),
		PostgresDB:       getEnv("POSTGRES_DB", "mmm"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MySQLDSN:   getEnv("MYSQL_DSN", ""),
		SQLitePath: getEnv("SQLITE_PATH", ""),

		BatchSize:    getEnvInt("BATCH_SIZE", 500),
		MaxRetries:   getEnvInt("MAX_RETRIES", 5),
		ShowProgress: getEnvBool("SHOW_PROGRESS", true),
		ShowReport:   getEnvBool("SHOW_REPORT", true),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

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

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}
