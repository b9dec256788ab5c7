package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/irahuldutta02/fact-check/factcheck"
	"github.com/irahuldutta02/fact-check/feedback"
	"github.com/irahuldutta02/fact-check/llm"
	"github.com/irahuldutta02/fact-check/verdict"
)

type verifyRequest struct {
	Statement string `json:"statement"`
}

type errorResponse struct {
	Error       string `json:"error"`
	RawResponse string `json:"rawResponse,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s *Server) verifyFactHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	requestID := uuid.NewString()
	logger := s.logger.With(zap.String("request_id", requestID))

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	defer r.Body.Close()

	record, err := s.checker.Check(r.Context(), req.Statement)
	if err != nil {
		s.writeCheckError(w, logger, err)
		return
	}

	logger.Info("verdict returned",
		zap.String("verdict", string(record.Verdict)),
		zap.Bool("used_web_scraping", record.UsedWebScraping))
	writeJSON(w, http.StatusOK, record)
}

// writeCheckError maps the pipeline's error taxonomy onto distinct,
// user-actionable responses. Parse failures carry the raw model text so
// callers can diagnose what the model actually said.
func (s *Server) writeCheckError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var parseErr *verdict.ParseError
	switch {
	case errors.Is(err, factcheck.ErrStatementTooShort):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, llm.ErrInvalidKey):
		logger.Error("model authentication failed", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error: "Invalid API key. Please check your Gemini API key configuration.",
		})
	case errors.Is(err, llm.ErrRateLimited):
		logger.Warn("model rate limited", zap.Error(err))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error: "API rate limit exceeded. Please try again later.",
		})
	case errors.Is(err, llm.ErrTimeout):
		logger.Warn("model timed out", zap.Error(err))
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{
			Error: "Request timed out. The model service might be experiencing high load.",
		})
	case errors.As(err, &parseErr):
		logger.Error("model response unparseable", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:       "Failed to parse AI response",
			RawResponse: parseErr.Raw,
		})
	default:
		logger.Error("fact check failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to verify fact"})
	}
}

type topicsResponse struct {
	Topics []string `json:"topics"`
	Error  string   `json:"error,omitempty"`
}

func (s *Server) trendingTopicsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	topics, err := s.topics.Topics(r.Context(), query)
	if err != nil {
		s.logger.Warn("trending topics failed", zap.Error(err))
		// Topics stays a non-nil empty array so clients degrade gracefully.
		writeJSON(w, http.StatusInternalServerError, topicsResponse{
			Topics: []string{},
			Error:  "Failed to fetch trending topics",
		})
		return
	}
	writeJSON(w, http.StatusOK, topicsResponse{Topics: topics})
}

type feedbackRequest struct {
	Statement string `json:"statement"`
	Verdict   string `json:"verdict"`
	Helpful   bool   `json:"helpful"`
}

func (s *Server) feedbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Statement) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing statement"})
		return
	}

	entry, err := s.feedback.Record(feedback.Entry{
		Statement: req.Statement,
		Verdict:   req.Verdict,
		Helpful:   req.Helpful,
	})
	if err != nil {
		s.logger.Error("feedback store failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to record feedback"})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
