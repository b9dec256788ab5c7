package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// GoogleAI generates text with a Gemini model through langchaingo.
type GoogleAI struct {
	model  llms.Model
	logger *zap.Logger
}

func NewGoogleAI(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*GoogleAI, error) {
	if apiKey == "" {
		return nil, ErrInvalidKey
	}
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("creating googleai client: %w", ClassifyError(err))
	}
	return &GoogleAI{model: model, logger: logger}, nil
}

func (g *GoogleAI) Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error) {
	settings := applyOptions(opts)

	var callOpts []llms.CallOption
	if settings.jsonSchema != "" {
		// Gemini honors JSON mode; the schema itself travels in the prompt.
		callOpts = append(callOpts, llms.WithJSONMode())
		prompt = prompt + "\n\nRespond with a single JSON object matching this schema:\n" + settings.jsonSchema
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, callOpts...)
	if err != nil {
		classified := ClassifyError(err)
		g.logger.Warn("model generation failed", zap.Error(classified))
		return "", classified
	}

	g.logger.Debug("model generation complete", zap.Int("response_chars", len(text)))
	return text, nil
}
