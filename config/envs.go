package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP                string   // Host IP for the server
	RESTPort              int      // Port for the REST API
	GinMode               string   // Mode for the Gin framework (e.g., release, debug, test)
	StoreDriver           string   // "mongo" or "sqlite"
	DBHost                string   // Hostname or IP address for the database
	DBPort                int      // Port number for the database
	DBUser                string   // Username for the database
	DBPassword            string   // Password for the database
	DBName                string   // Name of the database
	SQLitePath            string   // Database file when StoreDriver is sqlite
	RedisAddr             string   // Empty disables caching and ranking
	RedisPassword         string   // Password for Redis
	CacheTTLSeconds       int      // Lifetime of cached outcomes and rankings
	NatsURL               string   // Empty disables result events
	CORSOrigins           []string // Allowed browser origins
	DefaultSimulationRuns int      // Monte-Carlo runs when patrolling a saved map
	JWTSecret             string   // Secret key for JWT signing
	JWTIssuer             string   // Issuer claim for JWTs
	AdminKey              string   // Operator access key exchanged for tokens
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	cfg := Config{
		HostIP:                getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:              getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:               getEnvWithDefault("GIN_MODE", "release"),
		StoreDriver:           getEnvWithDefault("STORE_DRIVER", StoreMongo),
		SQLitePath:            getEnvWithDefault("SQLITE_PATH", "patrol.db"),
		RedisAddr:             getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:         getEnvWithDefault("REDIS_PASSWORD", ""),
		CacheTTLSeconds:       getEnvAsIntWithDefault("CACHE_TTL_SECONDS", 3600),
		NatsURL:               getEnvWithDefault("NATS_URL", ""),
		CORSOrigins:           splitList(getEnvWithDefault("CORS_ORIGINS", "*")),
		DefaultSimulationRuns: getEnvAsIntWithDefault("DEFAULT_SIMULATION_RUNS", 1000),
		JWTSecret:             mustGetEnv("JWT_SECRET"),
		JWTIssuer:             mustGetEnv("JWT_ISSUER"),
		AdminKey:              mustGetEnv("ADMIN_KEY"),
	}

	if err := dmn.CheckSimulationRuns(cfg.DefaultSimulationRuns); err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable DEFAULT_SIMULATION_RUNS: %v", err)
	}
	if cfg.CacheTTLSeconds <= 0 {
		log.Fatalf("[APP] [FATAL] Environment variable CACHE_TTL_SECONDS must be positive, got %d", cfg.CacheTTLSeconds)
	}

	switch cfg.StoreDriver {
	case StoreMongo:
		cfg.DBHost = mustGetEnv("DB_HOST")
		cfg.DBPort = mustGetEnvAsInt("DB_PORT")
		cfg.DBUser = mustGetEnv("DB_USER")
		cfg.DBPassword = mustGetEnv("DB_PASS")
		cfg.DBName = mustGetEnv("DB_NAME")
	case StoreSQLite:
	default:
		log.Fatalf("[APP] [FATAL] Unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	if _, exists := os.LookupEnv(key); !exists {
		return defaultValue
	}
	return mustGetEnvAsInt(key)
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
