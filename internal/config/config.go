package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// Static browser shell (index.html, product-search.html, ...)
	StaticDir string
	// Shell page paths used when building navigation URLs
	ListingPage string
	SearchPage  string
	DetailPage  string
	ErrorPage   string
	// Upstream services
	CatalogBaseURL  string // product API: /api/product/..., /api/analytics/...
	IdentityBaseURL string // identity-aware writes: /api/frontend/addtocart/{uid}
	AnalyticsURL    string // external hover-dwell endpoint
	AnalyticsUserID string // static user id sent with dwell reports
	HTTPTimeout     time.Duration
	// RequireUID makes the uid query parameter mandatory on every view
	RequireUID bool
	// Engagement reporter (detached executor)
	ReporterWorkers   int
	ReporterQueueSize int
	ReporterTimeout   time.Duration
	// Sessions (view state snapshots + hover timestamps)
	SessionTTL time.Duration
	// ViewTokenSecret signs view tokens; replicas behind one balancer must share it
	ViewTokenSecret string
	// Redis Configuration (optional - shared session store)
	UseRedis      bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	// Kafka Configuration (optional - engagement event sink)
	UseKafka             bool
	KafkaBrokers         []string
	KafkaTopicEngagement string
	KafkaClientID        string
	KafkaAcks            string
	KafkaRetries         int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Parse Kafka brokers (comma-separated)
	kafkaBrokersStr := getEnv("KAFKA_BROKERS", "localhost:9093")
	kafkaBrokers := strings.Split(kafkaBrokersStr, ",")
	for i, broker := range kafkaBrokers {
		kafkaBrokers[i] = strings.TrimSpace(broker)
	}

	return &Config{
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),
		StaticDir:   getEnv("STATIC_DIR", "./web"),
		ListingPage: getEnv("LISTING_PAGE", "/index.html"),
		SearchPage:  getEnv("SEARCH_PAGE", "/product-search.html"),
		DetailPage:  getEnv("DETAIL_PAGE", "/detailed-view.html"),
		ErrorPage:   getEnv("ERROR_PAGE", "/error.html"),
		// Upstream services
		CatalogBaseURL:  getEnv("CATALOG_BASE_URL", "http://localhost:8080"),
		IdentityBaseURL: getEnv("IDENTITY_BASE_URL", "http://localhost:8080"),
		AnalyticsURL:    getEnv("ANALYTICS_URL", "http://localhost:8085/api/hover"),
		AnalyticsUserID: getEnv("ANALYTICS_USER_ID", "storefront"),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 10*time.Second),
		RequireUID:      getEnvAsBool("REQUIRE_UID", true),
		// Engagement reporter
		ReporterWorkers:   getEnvAsInt("REPORTER_WORKERS", 4),
		ReporterQueueSize: getEnvAsInt("REPORTER_QUEUE_SIZE", 256),
		ReporterTimeout:   getEnvAsDuration("REPORTER_TIMEOUT", 5*time.Second),
		// Sessions
		SessionTTL:      getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		ViewTokenSecret: getEnv("VIEW_TOKEN_SECRET", ""),
		// Redis Configuration (optional)
		UseRedis:      getEnvAsBool("USE_REDIS", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		// Kafka Configuration (optional)
		UseKafka:             getEnvAsBool("USE_KAFKA", false),
		KafkaBrokers:         kafkaBrokers,
		KafkaTopicEngagement: getEnv("KAFKA_TOPIC_ENGAGEMENT", "storefront.engagement"),
		KafkaClientID:        getEnv("KAFKA_CLIENT_ID", "storefront-client"),
		KafkaAcks:            getEnv("KAFKA_ACKS", "1"),
		KafkaRetries:         getEnvAsInt("KAFKA_RETRIES", 3),
	}
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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

// getEnvAsDuration accepts Go durations ("750ms", "5s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
