package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppPort        int
	GeminiAPIKey   string
	GeminiModel    string
	FeedbackDBPath string
	Scrape         ScrapeSettings
}

// ScrapeSettings tunes the search and fetch layer. Loaded from an optional
// YAML file so scrape behavior can change without a rebuild.
type ScrapeSettings struct {
	UserAgent           string `yaml:"user_agent"`
	GoogleBaseURL       string `yaml:"google_base_url"`
	DuckDuckGoBaseURL   string `yaml:"duckduckgo_base_url"`
	KeepUndatedEvidence *bool  `yaml:"keep_undated_evidence"`
}

func Load() (*Config, error) {
	appPort, err := strconv.Atoi(requireEnv("APP_PORT"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	cfg := &Config{
		AppPort:        appPort,
		GeminiAPIKey:   requireEnv("GEMINI_API_KEY"),
		GeminiModel:    envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		FeedbackDBPath: envOr("FEEDBACK_DB_PATH", "data/feedback.db"),
	}

	scrape, err := loadScrapeSettings(os.Getenv("SCRAPE_SETTINGS_PATH"))
	if err != nil {
		return nil, err
	}
	cfg.Scrape = scrape

	return cfg, nil
}

// KeepUndated reports whether evidence without a last-updated date should be
// kept. Defaults to true when the settings file leaves it unset.
func (s ScrapeSettings) KeepUndated() bool {
	if s.KeepUndatedEvidence == nil {
		return true
	}
	return *s.KeepUndatedEvidence
}

func loadScrapeSettings(path string) (ScrapeSettings, error) {
	var settings ScrapeSettings
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read scrape settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse scrape settings: %w", err)
	}
	return settings, nil
}

func requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
