package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	UploadDir          string
	IngestTopicName    string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GeminiAPIKey string
}

type AIConfig struct {
	EmbeddingProvider    string // "http" or "ollama"
	EmbedServiceURL      string
	OllamaBaseURL        string
	OllamaEmbeddingModel string
	OllamaLLMModel       string
	GeminiModel          string
	MetaAIURL            string
	LLMProvider          string // "gemini", "ollama" or "metaai"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3001"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
			IngestTopicName:    getEnv("INGEST_TOPIC_NAME", "DOCUMENTS_INGESTED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "http"),
			EmbedServiceURL:      getEnv("EMBED_SERVICE_URL", "http://localhost:5000"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "mxbai-embed-large"),
			OllamaLLMModel:       getEnv("OLLAMA_LLM_MODEL", "llama3.2:1b"),
			GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			MetaAIURL:            getEnv("META_AI_URL", "http://localhost:5000"),
			LLMProvider:          getEnv("LLM_PROVIDER", "gemini"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
