package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	JWT    JWTConfig
	OTP    OTPConfig
	Admin  AdminConfig
	WP     WPConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI    string
	DBName string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type OTPConfig struct {
	APIKey     string
	SenderID   string
	TemplateID string
	Expiry     time.Duration
	// Debug skips SMS delivery and echoes the code in the response.
	// Development only.
	Debug bool
}

type AdminConfig struct {
	// Bootstrap credentials used to auto-create the first admin record
	// on its initial login attempt.
	Email    string
	Password string
}

type WPConfig struct {
	APIURL string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
			Env:  getEnv("NODE_ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getEnv("MONGODB_DB", "vssct"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASS", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_SECRET", ""),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
			AccessTTL:     getEnvDays("JWT_EXPIRES_DAYS", 7),
			RefreshTTL:    getEnvDays("JWT_REFRESH_EXPIRES_DAYS", 30),
		},
		OTP: OTPConfig{
			APIKey:     getEnv("OTP_API_KEY", ""),
			SenderID:   getEnv("MSG91_SENDER_ID", "VSSCT"),
			TemplateID: getEnv("MSG91_TEMPLATE_ID", ""),
			Expiry:     time.Duration(getEnvInt("OTP_EXPIRY_MINUTES", 5)) * time.Minute,
			Debug:      getEnv("OTP_DEBUG", "false") == "true",
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@vssct.com"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		WP: WPConfig{
			APIURL: getEnv("WP_API_URL", "https://vssct.com/wp-json/wp/v2"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDays(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * 24 * time.Hour
}
