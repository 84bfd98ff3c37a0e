package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultOllamaURL   = "http://localhost:11434/api/chat"
	defaultOllamaModel = "llama3.2:3b"
	defaultCacheDir    = ".cache"
)

type Config struct {
	OllamaURL   string
	OllamaModel string
	CacheDir    string
}

// ConfigLocations returns the list of config file locations that are checked
// in order of priority (first found wins).
func ConfigLocations() []string {
	locations := []string{
		".env", // Current directory
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		// XDG-style config directory
		locations = append(locations, filepath.Join(homeDir, ".config", "advisor-cli", ".env"))
	}

	return locations
}

// Load loads configuration from environment variables and optional .env files.
// The configFile parameter allows specifying a custom config file path.
// If empty, the default locations are checked in order:
//  1. .env in current directory
//  2. ~/.config/advisor-cli/.env
//
// Environment variables always take precedence over file values. All
// settings have working defaults, so a missing config file is only an
// error when it was requested explicitly.
func Load(configFile string) (*Config, error) {
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configFile, err)
		}
	} else {
		// Try default locations in order (first found wins)
		for _, loc := range ConfigLocations() {
			if _, err := os.Stat(loc); err == nil {
				_ = godotenv.Load(loc)
				break
			}
		}
	}

	return &Config{
		OllamaURL:   getenv("OLLAMA_URL", defaultOllamaURL),
		OllamaModel: getenv("OLLAMA_MODEL", defaultOllamaModel),
		CacheDir:    getenv("ADVISOR_CACHE_DIR", defaultCacheDir),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func configHelp() string {
	locations := ConfigLocations()
	var sb strings.Builder

	sb.WriteString("Configuration can be provided via:\n")
	sb.WriteString("  1. Environment variables (OLLAMA_URL, OLLAMA_MODEL, ADVISOR_CACHE_DIR)\n")
	sb.WriteString("  2. A .env file in one of these locations:\n")
	for _, loc := range locations {
		sb.WriteString(fmt.Sprintf("     - %s\n", loc))
	}
	sb.WriteString("  3. A custom config file via --config flag\n")
	sb.WriteString("\nExample .env file:\n")
	sb.WriteString("  OLLAMA_URL=http://localhost:11434/api/chat\n")
	sb.WriteString("  OLLAMA_MODEL=llama3.2:3b\n")
	sb.WriteString("  ADVISOR_CACHE_DIR=.cache\n")
	sb.WriteString("\nAll settings are optional; the defaults target a local Ollama.")

	return sb.String()
}

// PrintConfigHelp prints the configuration help message.
func PrintConfigHelp() {
	fmt.Println("Advisor CLI Configuration")
	fmt.Println("=========================")
	fmt.Println()
	fmt.Println(configHelp())
}
