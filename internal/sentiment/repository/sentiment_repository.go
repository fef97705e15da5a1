package repository

import (
	"context"
	"math"

	"github.com/jonreiter/govader"
)

// SentimentRepository scores text with a compound polarity in [-1, 1].
type SentimentRepository interface {
	Score(ctx context.Context, text string) (float64, error)
}

type vaderSentimentRepository struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderSentimentRepository creates a SentimentRepository backed by the VADER lexicon.
func NewVaderSentimentRepository() SentimentRepository {
	return &vaderSentimentRepository{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (r *vaderSentimentRepository) Score(_ context.Context, text string) (float64, error) {
	scores := r.analyzer.PolarityScores(text)
	return clampPolarity(scores.Compound), nil
}

func clampPolarity(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
