package service

import (
	"testing"

	"reddit-stock-sentiment/internal/sentiment/dto"

	"github.com/stretchr/testify/assert"
)

func resultsWithScores(scores ...float64) []dto.SentimentResult {
	results := make([]dto.SentimentResult, len(scores))
	for i, s := range scores {
		results[i] = dto.SentimentResult{SentimentScore: s}
	}
	return results
}

func TestSummarize(t *testing.T) {
	summary := Summarize(resultsWithScores(0.5, -0.3, 0.0, 0.05, -0.05, 0.02))

	assert.Equal(t, 6, summary.TotalPosts)
	assert.Equal(t, 2, summary.PositivePosts)
	assert.Equal(t, 2, summary.NegativePosts)
	assert.Equal(t, 2, summary.NeutralPosts)
	assert.Equal(t, 0.5, summary.MaxSentiment)
	assert.Equal(t, -0.3, summary.MinSentiment)
	assert.Equal(t, 0.037, summary.AvgSentiment)
}

func TestSummarize_SingleResult(t *testing.T) {
	summary := Summarize(resultsWithScores(-0.872))

	assert.Equal(t, dto.Summary{
		TotalPosts:    1,
		AvgSentiment:  -0.872,
		MaxSentiment:  -0.872,
		MinSentiment:  -0.872,
		NegativePosts: 1,
	}, summary)
}

func TestSummarize_Invariants(t *testing.T) {
	sets := [][]float64{
		{0.1},
		{-1, 1},
		{0.333, 0.333, 0.334},
		{0.049, -0.049, 0.05, -0.05, 0.0},
		{0.999, 0.998, -0.001, 0.7, -0.6, 0.2, 0.0},
	}

	for _, scores := range sets {
		s := Summarize(resultsWithScores(scores...))
		assert.Equal(t, s.TotalPosts, s.PositivePosts+s.NegativePosts+s.NeutralPosts, "scores %v", scores)
		assert.LessOrEqual(t, s.MinSentiment, s.AvgSentiment, "scores %v", scores)
		assert.LessOrEqual(t, s.AvgSentiment, s.MaxSentiment, "scores %v", scores)
	}
}
