package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Rag      RAGConfig
	Memory   MemoryConfig
	Language LanguageConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	IngestTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaModel       string
	Temperature       float64
	MaxTokens         int
	RequestTimeout    time.Duration
}

type RAGConfig struct {
	TopKRetrieval int
	ChunkSize     int
	ChunkOverlap  int
}

type MemoryConfig struct {
	MaxHistoryLength int
	SessionTTL       time.Duration
	SweepInterval    time.Duration
}

type LanguageConfig struct {
	DefaultLanguage string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			IngestTopic:        getEnv("KNOWLEDGE_INGEST_TOPIC_NAME", "INGEST_KNOWLEDGE_ITEM"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-3.5-turbo"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:    getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-ada-002"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			Temperature:       getEnvAsFloat("TEMPERATURE", 0.7),
			MaxTokens:         getEnvAsInt("MAX_TOKENS", 1000),
			RequestTimeout:    time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Rag: RAGConfig{
			TopKRetrieval: getEnvAsInt("TOP_K_RETRIEVAL", 5),
			ChunkSize:     getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:  getEnvAsInt("CHUNK_OVERLAP", 200),
		},
		Memory: MemoryConfig{
			MaxHistoryLength: getEnvAsInt("MAX_HISTORY_LENGTH", 10),
			SessionTTL:       time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
			SweepInterval:    time.Duration(getEnvAsInt("SESSION_SWEEP_INTERVAL_MINUTES", 60)) * time.Minute,
		},
		Language: LanguageConfig{
			DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "zh"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
