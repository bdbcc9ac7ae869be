package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

type Config struct {
	AppPort      string
	AppMode      string
	ClientOrigin string

	StorageDriver string
	MongoURI      string
	MongoDatabase string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string

	JWTSecret    string
	JWTExpiryMin int

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	CacheTTLSeconds        int
	RateLimitWrites        int
	RateLimitWindowSeconds int

	// RequireAuthOnUpdate puts PATCH behind the bearer token check like every other route.
	RequireAuthOnUpdate bool
	// EnforceParticipantCheck rejects two-party updates whose asserted participants both mismatch.
	EnforceParticipantCheck bool
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:      getEnv("APP_PORT", "4741"),
		AppMode:      getEnv("APP_MODE", "debug"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:7165"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "huddle-development"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "huddle"),
		DBPort:        getEnv("DB_PORT", "5432"),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		JWTExpiryMin: getEnvAsInt("JWT_EXPIRY_MIN", 60),

		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", true),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		CacheTTLSeconds:        getEnvAsInt("CACHE_TTL_SECONDS", 300),
		RateLimitWrites:        getEnvAsInt("RATE_LIMIT_WRITES", 60),
		RateLimitWindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),

		RequireAuthOnUpdate:     getEnvAsBool("REQUIRE_AUTH_ON_UPDATE", false),
		EnforceParticipantCheck: getEnvAsBool("ENFORCE_PARTICIPANT_CHECK", false),
	}
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

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
