package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	TeamsServiceBaseURL   string
	MatchesServiceBaseURL string
	ServerPort            int
	CacheTTL              time.Duration
	RemoteTimeout         time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	cfg := &Config{
		TeamsServiceBaseURL:   getEnvOrDefault("TEAMS_SERVICE_BASE_URL", "http://teams-service:8082"),
		MatchesServiceBaseURL: getEnvOrDefault("MATCHES_SERVICE_BASE_URL", "http://matches-service:8081"),
	}

	port, err := getEnvIntOrDefault("SERVER_PORT", 8083)
	if err != nil {
		return nil, err
	}
	cfg.ServerPort = port

	ttlSeconds, err := getEnvIntOrDefault("CACHE_TTL_SECONDS", 45)
	if err != nil {
		return nil, err
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("CACHE_TTL_SECONDS must be positive, got %d", ttlSeconds)
	}
	cfg.CacheTTL = time.Duration(ttlSeconds) * time.Second

	timeoutSeconds, err := getEnvIntOrDefault("REMOTE_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	if timeoutSeconds <= 0 {
		return nil, fmt.Errorf("REMOTE_TIMEOUT_SECONDS must be positive, got %d", timeoutSeconds)
	}
	cfg.RemoteTimeout = time.Duration(timeoutSeconds) * time.Second

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return value, nil
}
