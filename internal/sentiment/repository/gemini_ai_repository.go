package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"reddit-stock-sentiment/internal/sentiment/config"
	"reddit-stock-sentiment/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// GeminiGenerator is the part of the genai models service used for scoring.
type GeminiGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiSentimentRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	models         GeminiGenerator
}

type geminiSentimentResult struct {
	Compound float64 `json:"compound"`
}

// NewGeminiSentimentRepository creates a SentimentRepository that asks Gemini
// for a compound polarity score. models is usually genai.Client.Models.
func NewGeminiSentimentRepository(cfg *config.Config, log *logger.Logger, models GeminiGenerator) SentimentRepository {
	perMinute := cfg.Gemini.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 15
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)

	return &geminiSentimentRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		models:         models,
	}
}

func (r *geminiSentimentRepository) Score(ctx context.Context, text string) (float64, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	resp, err := r.models.GenerateContent(ctx, r.cfg.Gemini.Model, genai.Text(buildSentimentPrompt(text)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to generate content with Gemini", logger.ErrorField(err))
		return 0, fmt.Errorf("failed to score sentiment with gemini: %w", err)
	}

	raw := cleanJSON(resp.Text())
	var result geminiSentimentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		r.logger.ErrorContext(ctx, "Failed to parse Gemini sentiment response", logger.ErrorField(err), logger.StringField("response", raw))
		return 0, fmt.Errorf("failed to parse gemini sentiment response: %w", err)
	}

	return clampPolarity(result.Compound), nil
}

func buildSentimentPrompt(text string) string {
	return fmt.Sprintf(`You are a financial sentiment analyzer for retail investor forum posts.
Rate the overall sentiment of the post below as a single compound polarity score
between -1.0 (most negative) and 1.0 (most positive), where values between
-0.05 and 0.05 are neutral.

Respond with JSON only: {"compound": <number>}

Post:
%s`, text)
}

// cleanJSON strips a markdown code fence around a JSON payload.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
