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
	Server  ServerConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Kafka   KafkaConfig
	LLM     LLMConfig
	Stripe  StripeConfig
	Observ  ObservabilityConfig
	Contact ContactConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CacheConfig struct {
	Backend string // memory, redis or none
	TTL     time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	TopicEvents string
}

type LLMConfig struct {
	Provider     string // gemini or claude
	GeminiAPIKey string
	ClaudeAPIKey string
	GeminiModel  string
	GeminiPro    string
	ClaudeModel  string
	Timeout      time.Duration
}

type StripeConfig struct {
	SecretKey   string
	FrontendURL string
	Timeout     time.Duration
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type ContactConfig struct {
	Email string
	Phone string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL, _ := strconv.Atoi(getEnv("SEARCH_CACHE_TTL_SECONDS", "300"))
	llmTimeout, _ := strconv.Atoi(getEnv("LLM_TIMEOUT_SECONDS", "60"))
	stripeTimeout, _ := strconv.Atoi(getEnv("STRIPE_TIMEOUT_SECONDS", "30"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3001"),
			Env:  getEnv("ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "cryzo"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Cache: CacheConfig{
			Backend: getEnv("CACHE_BACKEND", "memory"),
			TTL:     time.Duration(cacheTTL) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicEvents: getEnv("KAFKA_TOPIC_EVENTS", "marketplace-events"),
		},
		LLM: LLMConfig{
			Provider:     getEnv("LLM_PROVIDER", "claude"),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			ClaudeAPIKey: getEnv("CLAUDE_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
			GeminiPro:    getEnv("GEMINI_PRO_MODEL", "gemini-2.5-pro-exp-03-25"),
			ClaudeModel:  getEnv("CLAUDE_MODEL", "claude-sonnet-4-20250514"),
			Timeout:      time.Duration(llmTimeout) * time.Second,
		},
		Stripe: StripeConfig{
			SecretKey:   getEnv("STRIPE_SECRET_KEY", ""),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
			Timeout:     time.Duration(stripeTimeout) * time.Second,
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Contact: ContactConfig{
			Email: getEnv("CONTACT_EMAIL", "sales@cryzo.co.in"),
			Phone: getEnv("CONTACT_PHONE", "+1 940-400-9316"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, llm=%s", cfg.Server.Env, cfg.Server.Port, cfg.LLM.Provider)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
