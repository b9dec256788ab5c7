// Package llm is the boundary to the generative-model provider. The rest of
// the system sees a single Generate capability plus a small error taxonomy;
// which provider sits behind it is wiring detail.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider failure classes the caller can act on distinctly.
var (
	ErrInvalidKey  = errors.New("invalid or missing API key")
	ErrRateLimited = errors.New("rate limit exceeded")
	ErrTimeout     = errors.New("model request timed out")
)

type generateSettings struct {
	jsonSchema string
}

// GenerateOption tunes a single Generate call.
type GenerateOption func(*generateSettings)

// WithJSONSchema requests schema-guided structured output. Providers that
// cannot enforce a schema fall back to JSON-mode generation with the schema
// embedded in the instructions.
func WithJSONSchema(schema string) GenerateOption {
	return func(s *generateSettings) {
		s.jsonSchema = schema
	}
}

func applyOptions(opts []GenerateOption) generateSettings {
	var s generateSettings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Generator produces text for a prompt. Implementations classify provider
// failures through ClassifyError so callers can match with errors.Is.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)
}

// ClassifyError maps a raw provider error onto the package's taxonomy,
// preserving the original message. Unrecognized errors pass through.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") ||
		strings.Contains(msg, "api_key_invalid") ||
		strings.Contains(msg, "unauthenticated") ||
		strings.Contains(msg, "401"):
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	case strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "429"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "timed out") ||
		strings.Contains(msg, "deadline exceeded"):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
