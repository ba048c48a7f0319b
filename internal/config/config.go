package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                      string
	DBUrl                     string
	AppEnv                    string
	SessionTTLHours           int
	DefaultStudentEmail       string
	DefaultStudentPassword    string
	DefaultInstructorEmail    string
	DefaultInstructorPassword string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:                      getEnv("PORT", "8080"),
		DBUrl:                     getEnv("DB_URL", ""),
		AppEnv:                    normalizeEnv(getEnv("APP_ENV", "production")),
		SessionTTLHours:           getEnvInt("SESSION_TTL_HOURS", 168),
		DefaultStudentEmail:       getEnv("DEFAULT_STUDENT_EMAIL", ""),
		DefaultStudentPassword:    getEnv("DEFAULT_STUDENT_PASSWORD", ""),
		DefaultInstructorEmail:    getEnv("DEFAULT_INSTRUCTOR_EMAIL", ""),
		DefaultInstructorPassword: getEnv("DEFAULT_INSTRUCTOR_PASSWORD", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
