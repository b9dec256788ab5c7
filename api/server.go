// Package api exposes the fact-check pipeline over HTTP.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/irahuldutta02/fact-check/feedback"
	"github.com/irahuldutta02/fact-check/verdict"
)

// FactChecker is satisfied by *factcheck.Checker.
type FactChecker interface {
	Check(ctx context.Context, statement string) (*verdict.Record, error)
}

// TopicSuggester is satisfied by *trending.Service.
type TopicSuggester interface {
	Topics(ctx context.Context, query string) ([]string, error)
}

// FeedbackRecorder is satisfied by *feedback.Store.
type FeedbackRecorder interface {
	Record(entry feedback.Entry) (feedback.Entry, error)
}

// Server wires the handlers onto a mux.
type Server struct {
	checker  FactChecker
	topics   TopicSuggester
	feedback FeedbackRecorder
	logger   *zap.Logger
	port     int
}

func NewServer(checker FactChecker, topics TopicSuggester, store FeedbackRecorder, port int, logger *zap.Logger) *Server {
	return &Server{
		checker:  checker,
		topics:   topics,
		feedback: store,
		logger:   logger,
		port:     port,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/verify-fact", s.verifyFactHandler)
	mux.HandleFunc("/api/trending-topics", s.trendingTopicsHandler)
	mux.HandleFunc("/api/feedback", s.feedbackHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting api server", zap.Int("port", s.port))
	return srv.ListenAndServe()
}
