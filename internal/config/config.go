// Package config loads application settings from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Database holds PostgreSQL connection settings.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds a libpq-compatible connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Config is the full application configuration.
type Config struct {
	Database Database

	// Storage selects the backing store: "postgres" or "memory".
	Storage string

	// HTTPPort is the listen port for the API server.
	HTTPPort string

	// CarRate and BikeRate are the hourly fare rates.
	CarRate  float64
	BikeRate float64

	// CarSpots and BikeSpots size the garage when Storage is "memory";
	// with PostgreSQL the provisioned rows in parking_spots decide.
	CarSpots  int
	BikeSpots int

	// Dev enables human-readable console logging.
	Dev bool
}

// Load reads configuration from a .env file (if present) and the environment,
// falling back to local-development defaults.
func Load() Config {
	// A missing .env file is not an error; env vars still apply.
	_ = godotenv.Load()

	return Config{
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "parkinggarage"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Storage:   getEnv("GARAGE_STORAGE", "postgres"),
		HTTPPort:  getEnv("PORT", "8080"),
		CarRate:   getEnvFloat("FARE_CAR_RATE_PER_HOUR", 1.5),
		BikeRate:  getEnvFloat("FARE_BIKE_RATE_PER_HOUR", 1.0),
		CarSpots:  getEnvInt("GARAGE_CAR_SPOTS", 3),
		BikeSpots: getEnvInt("GARAGE_BIKE_SPOTS", 2),
		Dev:       getEnv("APP_ENV", "development") == "development",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
