package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	PORT   string
	DB_URL string

	ALLOWED_ORIGINS    []string
	IMAGE_BASE_URL     string
	VIEWER_IMAGE_WIDTH int

	ADMIN_USERNAME        string
	ADMIN_PASSWORD_HASH   string
	ADMIN_JWT_SECRET      string
	ADMIN_TOKEN_TTL_HOURS int

	LOG_LEVEL string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8787")
	DB_URL = mustEnv("DB_URL")

	ALLOWED_ORIGINS = splitList(getEnv("ALLOWED_ORIGINS", "*"))
	IMAGE_BASE_URL = strings.TrimRight(getEnv("IMAGE_BASE_URL", "https://img.unbelong.xyz"), "/")
	VIEWER_IMAGE_WIDTH = getInt("VIEWER_IMAGE_WIDTH", 1200)

	ADMIN_USERNAME = getEnv("ADMIN_USERNAME", "admin")
	ADMIN_PASSWORD_HASH = mustEnv("ADMIN_PASSWORD_HASH")
	ADMIN_JWT_SECRET = mustEnv("ADMIN_JWT_SECRET")
	ADMIN_TOKEN_TTL_HOURS = getInt("ADMIN_TOKEN_TTL_HOURS", 24)

	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
}

// LoadDatabaseEnv is the subset used by the operator CLI for commands that
// only touch the store.
func LoadDatabaseEnv() {
	_ = godotenv.Load()
	DB_URL = mustEnv("DB_URL")
	IMAGE_BASE_URL = strings.TrimRight(getEnv("IMAGE_BASE_URL", "https://img.unbelong.xyz"), "/")
	VIEWER_IMAGE_WIDTH = getInt("VIEWER_IMAGE_WIDTH", 1200)
	LOG_LEVEL = getEnv("LOG_LEVEL", "warn")
}

// LoadAdminEnv is the subset used by the operator CLI to mint tokens.
func LoadAdminEnv() {
	_ = godotenv.Load()
	ADMIN_USERNAME = getEnv("ADMIN_USERNAME", "admin")
	ADMIN_JWT_SECRET = mustEnv("ADMIN_JWT_SECRET")
	ADMIN_TOKEN_TTL_HOURS = getInt("ADMIN_TOKEN_TTL_HOURS", 24)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Printf("Invalid integer for %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
