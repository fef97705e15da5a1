package service

import (
	"math"

	"reddit-stock-sentiment/internal/sentiment/dto"
	"reddit-stock-sentiment/pkg/common"
)

// Summarize computes summary statistics over results. results must not be empty.
func Summarize(results []dto.SentimentResult) dto.Summary {
	summary := dto.Summary{TotalPosts: len(results)}
	if len(results) == 0 {
		return summary
	}

	sum := 0.0
	maxScore := math.Inf(-1)
	minScore := math.Inf(1)
	for _, r := range results {
		s := r.SentimentScore
		sum += s
		maxScore = math.Max(maxScore, s)
		minScore = math.Min(minScore, s)

		switch {
		case s >= common.PositiveThreshold:
			summary.PositivePosts++
		case s <= common.NegativeThreshold:
			summary.NegativePosts++
		default:
			summary.NeutralPosts++
		}
	}

	summary.AvgSentiment = round3(sum / float64(len(results)))
	summary.MaxSentiment = round3(maxScore)
	summary.MinSentiment = round3(minScore)
	return summary
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
