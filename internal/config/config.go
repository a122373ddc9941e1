package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	DBPath     string
	APIBaseURL string
	DataDir    string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBPath:     getEnv("DB_PATH", filepath.Join("data", "taskboard.db")),
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		DataDir:    getEnv("DATA_DIR", defaultDataDir()),
	}
}

// defaultDataDir is where the CLI keeps its timer registry and
// preferences (~/.taskboard).
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskboard"
	}
	return filepath.Join(home, ".taskboard")
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
