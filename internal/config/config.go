package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultGameMasterURL = "https://raw.githubusercontent.com/PokeMiners/game_masters/master/latest/latest.json"

type Config struct {
	GameMasterPath string
	OutputDir      string

	GameMasterURL   string
	FetchTimeoutMs  int
	FetchMaxRetries int
	FetchBackoffMs  int

	WatchDebounceMs int

	LogLevel string
	LogJSON  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		GameMasterPath: getEnv("GAME_MASTER_PATH", filepath.Join(cwd, "data", "GAME_MASTER.json")),
		OutputDir:      getEnv("OUTPUT_DIR", filepath.Join(cwd, "data")),

		GameMasterURL:   getEnv("GAME_MASTER_URL", defaultGameMasterURL),
		FetchTimeoutMs:  getEnvInt("FETCH_TIMEOUT_MS", 30000),
		FetchMaxRetries: getEnvInt("FETCH_MAX_RETRIES", 4),
		FetchBackoffMs:  getEnvInt("FETCH_BACKOFF_MS", 250),

		WatchDebounceMs: getEnvInt("WATCH_DEBOUNCE_MS", 500),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getEnvBool("LOG_JSON", false),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
