package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
)

// InventoryConfig configures the inventory API process
type InventoryConfig struct {
	Port        string
	Environment string
	// Store Configuration
	StoreDriver string
	SQLitePath  string
	// Redis Configuration (optional - cache for lookups by id)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      int  // Cache TTL in seconds
	UseCache      bool // Whether to use cache (Redis) or not
	// Kafka Configuration (optional - item change events)
	KafkaBrokers    []string
	KafkaTopicItems string
	KafkaClientID   string
	KafkaAcks       string
	KafkaRetries    int
	UseKafka        bool
}

// CatalogConfig configures the catalog web process
type CatalogConfig struct {
	Port        string
	Environment string
	// Base URL of the inventory API, without trailing slash
	InventoryServiceURL string
	InventoryTimeout    time.Duration
}

func LoadInventory() *InventoryConfig {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &InventoryConfig{
		Port:        getEnv("PORT", "8081"),
		Environment: getEnv("ENVIRONMENT", "development"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMemory)),
		SQLitePath:  getEnv("SQLITE_PATH", "./inventory.db"),
		// Redis Configuration (optional)
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsInt("CACHE_TTL", 300), // 5 minutes default
		UseCache:      getEnvAsBool("USE_CACHE", false),
		// Kafka Configuration (optional)
		KafkaBrokers:    getEnvAsList("KAFKA_BROKERS", "localhost:9093"),
		KafkaTopicItems: getEnv("KAFKA_TOPIC_ITEMS", "inventory.items"),
		KafkaClientID:   getEnv("KAFKA_CLIENT_ID", "inventory-api"),
		KafkaAcks:       getEnv("KAFKA_ACKS", "all"),
		KafkaRetries:    getEnvAsInt("KAFKA_RETRIES", 3),
		UseKafka:        getEnvAsBool("USE_KAFKA", false),
	}
}

func LoadCatalog() *CatalogConfig {
	_ = godotenv.Load()

	return &CatalogConfig{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		InventoryServiceURL: NormalizeBaseURL(getEnv("INVENTORY_SERVICE_URL", "http://localhost:8081")),
		InventoryTimeout:    time.Duration(getEnvAsInt("INVENTORY_TIMEOUT_SECONDS", 5)) * time.Second,
	}
}

// NormalizeBaseURL trims surrounding whitespace and any trailing slashes
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

func getEnvAsList(key, defaultValue string) []string {
	parts := strings.Split(getEnv(key, defaultValue), ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
