package config

import (
	"os"
	"path/filepath"
)

const (
	// Default OpenAI-compatible chat completions endpoint (local llama.cpp / vLLM style)
	defaultLLMBaseURL = "http://localhost:8080/v1"
	defaultLLMModel   = "qwen2.5-7b-instruct"
	defaultAddress    = ":8200"
)

// Config holds application configuration
type Config struct {
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	DataDir    string
	Address    string
}

// globalConfig holds the application configuration instance
var globalConfig *Config

// Initialize sets up the configuration from environment variables
func Initialize() {
	globalConfig = &Config{
		LLMBaseURL: getEnv("SAM_LLM_URL", defaultLLMBaseURL),
		LLMModel:   getEnv("SAM_LLM_MODEL", defaultLLMModel),
		LLMAPIKey:  getEnv("SAM_LLM_API_KEY", "not-needed"),
		DataDir:    getDataDir(),
		Address:    getEnv("SAM_ADDRESS", defaultAddress),
	}
}

// Get returns the global configuration instance
func Get() *Config {
	if globalConfig == nil {
		Initialize()
	}
	return globalConfig
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDataDir returns the data directory from environment or the default
// under the user's home directory
func getDataDir() string {
	if dir := os.Getenv("SAM_DATA_DIR"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sam"
	}
	return filepath.Join(homeDir, ".local", "share", "sam")
}
