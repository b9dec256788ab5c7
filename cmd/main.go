package main

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/irahuldutta02/fact-check/api"
	"github.com/irahuldutta02/fact-check/config"
	"github.com/irahuldutta02/fact-check/evidence"
	"github.com/irahuldutta02/fact-check/factcheck"
	"github.com/irahuldutta02/fact-check/feedback"
	"github.com/irahuldutta02/fact-check/llm"
	"github.com/irahuldutta02/fact-check/scraper"
	"github.com/irahuldutta02/fact-check/search"
	"github.com/irahuldutta02/fact-check/trending"
	"github.com/irahuldutta02/fact-check/verdict"
)

func main() {
	// =========
	// Config
	// =========
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// HTTP
	// =========
	// Scraped sites routinely serve broken certificate chains, so page
	// fetches skip verification. Nothing sensitive travels over this client.
	transport := NewScrapeTransport()

	// =========
	// Search engines
	// =========
	google := search.NewGoogle(search.EngineConfig{
		BaseURL:   cfg.Scrape.GoogleBaseURL,
		UserAgent: cfg.Scrape.UserAgent,
		Transport: transport,
	}, logger)
	duckduckgo := search.NewDuckDuckGo(search.EngineConfig{
		BaseURL:   cfg.Scrape.DuckDuckGoBaseURL,
		UserAgent: cfg.Scrape.UserAgent,
		Transport: transport,
	}, logger)
	aggregator := search.NewAggregator(logger, google, duckduckgo)

	// =========
	// Evidence pipeline
	// =========
	fetcher := scraper.NewFetcher(transport, cfg.Scrape.UserAgent, logger)
	extractor := search.NewSnowballKeywordExtractor()
	pipeline := evidence.NewPipeline(aggregator, fetcher, extractor,
		evidence.Policy{KeepUndated: cfg.Scrape.KeepUndated()}, logger)

	// =========
	// Gemini
	// =========
	generator, err := llm.NewGoogleAI(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Fatal("failed to create gemini client", zap.Error(err))
	}
	synthesizer := verdict.NewSynthesizer(generator, true, logger)
	topics := trending.NewService(generator, logger)

	// =========
	// Fact checker
	// =========
	checker := factcheck.NewChecker(pipeline, synthesizer, logger)

	// =========
	// Feedback store
	// =========
	store, err := feedback.Open(cfg.FeedbackDBPath)
	if err != nil {
		logger.Fatal("failed to open feedback store", zap.Error(err))
	}
	defer store.Close()

	// =========
	// HTTP server
	// =========
	server := api.NewServer(checker, topics, store, cfg.AppPort, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func NewScrapeTransport() *http.Transport {
	return &http.Transport{
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: true},
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		ResponseHeaderTimeout: 30 * time.Second,
	}
}
