package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// defaultJWTSecret is a development-only placeholder; Validate rejects
// it in production.
const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds all environment-driven settings. It is loaded once in main
// and handed to the components that need it.
type Config struct {
	Env  string // "development" or "production"
	Host string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	RedisAddr string

	JWTSecret  string
	BcryptCost int

	// CORSAllowedOrigins restricts which origins are echoed back.
	// Empty means any origin is allowed (dev default).
	CORSAllowedOrigins []string

	LogFile string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return Config{
		Env:  getEnv("APP_ENV", "development"),
		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "urbanpulse"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		JWTSecret:  getEnv("JWT_SECRET", defaultJWTSecret),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),

		LogFile: getEnv("LOG_FILE", "./logs/app.log"),
	}
}

// Validate rejects configurations that are unsafe to run. Called once at
// startup; the process refuses to boot on error.
func (c Config) Validate() error {
	if c.Production() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

// Production reports whether the gateway runs in production mode.
// Error responses are redacted when it does.
func (c Config) Production() bool {
	return c.Env == "production"
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	if v, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
