package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	JWTKey []byte
	JWTExp time.Duration

	MongoURI string
	DBName   string

	BcryptCost      int
	HashConcurrency int

	CORSAllowedOrigins []string
}

// Load reads the environment (optionally a .env file) into a Config value.
// The value is handed to the components that need it at construction time.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "8080"),
		JWTKey:             []byte(getEnv("JWT_SECRET", "change_this_secret")),
		JWTExp:             time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:             getEnv("DB_NAME", "connectsphere"),
		BcryptCost:         getEnvAsInt("BCRYPT_COST", 10),
		HashConcurrency:    getEnvAsInt("HASH_CONCURRENCY", 4),
		CORSAllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"), ","),
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
