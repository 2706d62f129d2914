package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Rag      RagConfig
	Image    ImageConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Gemini      string
	HuggingFace string
	OpenAI      string
	EmbedTopic  string // Embedding worker topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	Backends          string // comma-separated backend priority, e.g. "gemini,huggingface,ollama"
	HuggingFaceURL    string
	HuggingFaceModel  string
	OllamaChatModel   string
}

type RagConfig struct {
	SimilarityThreshold float64
	TopK                int
}

type ImageConfig struct {
	Enabled       bool
	CampusContext string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Gemini:      getEnv("GEMINI_API_KEY", ""),
			HuggingFace: getEnv("HF_API_KEY", ""),
			OpenAI:      getEnv("OPENAI_API_KEY", ""),
			EmbedTopic:  getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_KNOWLEDGE_DOCUMENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			Backends:          getEnv("LLM_BACKENDS", "gemini,huggingface,ollama"),
			HuggingFaceURL:    getEnv("HF_BASE_URL", "https://router.huggingface.co/v1"),
			HuggingFaceModel:  getEnv("HF_MODEL", "meta-llama/Llama-3.1-8B-Instruct"),
			OllamaChatModel:   getEnv("OLLAMA_CHAT_MODEL", "llama3"),
		},
		Rag: RagConfig{
			SimilarityThreshold: getEnvAsFloat("RAG_SIMILARITY_THRESHOLD", 0.5),
			TopK:                getEnvAsInt("RAG_TOP_K", 3),
		},
		Image: ImageConfig{
			Enabled:       getEnvAsBool("IMAGE_GENERATION_ENABLED", true),
			CampusContext: getEnv("IMAGE_CAMPUS_CONTEXT", "University campus context."),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
