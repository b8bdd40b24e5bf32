// Package config reads runtime configuration from the environment.
// Callers load a .env file first (godotenv) so local development needs no
// exported shell variables.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Postgres DSN for provider accounts. Empty selects the embedded
	// sqlite database at SQLitePath.
	AuthDBDSN  string
	SQLitePath string

	JWTSecret string

	// Seed-role policy: these addresses map to elevated roles before any
	// metadata exists. Set empty to disable.
	BootstrapAdminEmail string
	BootstrapStaffEmail string

	UploadDir       string
	UploadURLPrefix string

	TelegramBotToken string
	TelegramChatID   int64

	SeedDemoData bool
}

func Load() Config {
	return Config{
		Addr:                getenv("ADDR", ":8080"),
		RedisAddr:           getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getint("REDIS_DB", 0),
		AuthDBDSN:           os.Getenv("AUTH_DB_DSN"),
		SQLitePath:          getenv("SQLITE_PATH", "guestdesk.db"),
		JWTSecret:           getenv("JWT_SECRET", "dev-only-secret"),
		BootstrapAdminEmail: getenv("BOOTSTRAP_ADMIN_EMAIL", "admin@hotel.com"),
		BootstrapStaffEmail: getenv("BOOTSTRAP_STAFF_EMAIL", "staff@hotel.com"),
		UploadDir:           getenv("UPLOAD_DIR", "uploads"),
		UploadURLPrefix:     getenv("UPLOAD_URL_PREFIX", "/uploads"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:      getint64("TELEGRAM_CHAT_ID", 0),
		SeedDemoData:        getbool("SEED_DEMO_DATA", true),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getint64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
