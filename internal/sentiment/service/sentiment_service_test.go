package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"reddit-stock-sentiment/internal/entity"
	"reddit-stock-sentiment/internal/sentiment/dto"
	"reddit-stock-sentiment/pkg/apperror"
	"reddit-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(reddit *fakeRedditRepository, scorer *fakeSentimentRepository) SentimentService {
	return NewSentimentService(reddit, scorer, logger.NewNop())
}

func TestAnalyzeStockSentiment_TopBeforeNewAndDeduplicated(t *testing.T) {
	reddit := &fakeRedditRepository{results: map[string][]entity.Post{
		"top|GME":      {{ID: "t1", Title: "top one"}, {ID: "s1", Title: "shared"}},
		"top|GameStop": {{ID: "t2", Title: "top two"}},
		"new|GME":      {{ID: "s1", Title: "shared"}, {ID: "n1", Title: "new one"}},
		"new|GameStop": {{ID: "t2", Title: "top two"}, {ID: "n2", Title: "new two"}},
	}}
	scorer := &fakeSentimentRepository{fallback: 0.1}

	results, err := newTestService(reddit, scorer).AnalyzeStockSentiment(context.Background(), "wallstreetbets", "GME")
	require.NoError(t, err)

	var excerpts []string
	for _, r := range results {
		excerpts = append(excerpts, r.Post)
	}
	assert.Equal(t, []string{"top one", "shared", "top two", "new one", "new two"}, excerpts)

	require.Len(t, reddit.calls, 4)
	assert.Equal(t, "top", reddit.calls[0].sort)
	assert.Equal(t, 5, reddit.calls[0].limit)
	assert.Equal(t, "new", reddit.calls[2].sort)
}

func TestAnalyzeStockSentiment_SkipsEmptyNormalizedText(t *testing.T) {
	reddit := &fakeRedditRepository{results: map[string][]entity.Post{
		"top|XYZ123": {
			{ID: "e1", Title: "🚀🚀🚀", Body: "https://imgur.com/abc"},
			{ID: "e2", Title: "r/wallstreetbets", Body: "u/someone"},
			{ID: "ok", Title: "XYZ123 is fine", Body: ""},
		},
	}}
	scorer := &fakeSentimentRepository{fallback: 0.2}

	results, err := newTestService(reddit, scorer).AnalyzeStockSentiment(context.Background(), "stocks", "XYZ123")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "XYZ123 is fine", results[0].Post)
	assert.Equal(t, []string{"XYZ123 is fine"}, scorer.texts, "empty posts are never scored")
}

func TestAnalyzeStockSentiment_ResultFields(t *testing.T) {
	created := time.Date(2024, 3, 5, 14, 30, 15, 0, time.UTC)
	longBody := strings.Repeat("word ", 100)
	reddit := &fakeRedditRepository{results: map[string][]entity.Post{
		"top|AAPL": {{ID: "a1", Title: "Apple up", Body: longBody, URL: "https://reddit.com/a1", CreatedAt: created}},
	}}
	scorer := &fakeSentimentRepository{fallback: 0.123456}

	results, err := newTestService(reddit, scorer).AnalyzeStockSentiment(context.Background(), "stocks", "AAPL")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "2024-03-05 14:30:15", r.Timestamp)
	assert.Equal(t, "https://reddit.com/a1", r.URL)
	assert.Equal(t, 0.123, r.SentimentScore)
	assert.Len(t, r.Post, 303)
	assert.True(t, strings.HasSuffix(r.Post, "..."))
	assert.True(t, strings.HasPrefix(r.Post, "Apple up word word"))
}

func TestAnalyzeStockSentiment_ShortTextNotTruncated(t *testing.T) {
	text := strings.Repeat("a", 300)
	reddit := &fakeRedditRepository{results: map[string][]entity.Post{
		"top|AMD": {{ID: "x", Title: text}},
	}}

	results, err := newTestService(reddit, &fakeSentimentRepository{}).AnalyzeStockSentiment(context.Background(), "stocks", "AMD")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, text, results[0].Post)
}

func TestAnalyzeStockSentiment_FetchError(t *testing.T) {
	reddit := &fakeRedditRepository{err: errors.New("Redirect to /subreddits/search")}

	_, err := newTestService(reddit, &fakeSentimentRepository{}).AnalyzeStockSentiment(context.Background(), "nope", "GME")
	require.Error(t, err)
	assert.Equal(t, apperror.TypeExternal, apperror.As(err).Type)
	assert.Equal(t, "Redirect to /subreddits/search", err.Error())
}

func TestAnalyzeStockSentiment_ScoreError(t *testing.T) {
	reddit := &fakeRedditRepository{results: map[string][]entity.Post{
		"top|GME": {{ID: "g", Title: "gme"}},
	}}

	_, err := newTestService(reddit, &fakeSentimentRepository{err: errors.New("scorer offline")}).AnalyzeStockSentiment(context.Background(), "stocks", "GME")
	require.Error(t, err)
	assert.Equal(t, "scorer offline", err.Error())
}

func TestAnalyze_Validation(t *testing.T) {
	svc := newTestService(&fakeRedditRepository{}, &fakeSentimentRepository{})

	for _, req := range []*dto.AnalyzeRequest{nil, {}, {Stock: "GME"}, {Subreddit: "stocks"}} {
		_, err := svc.Analyze(context.Background(), req)
		require.Error(t, err)
		appErr := apperror.As(err)
		assert.Equal(t, apperror.TypeValidation, appErr.Type)
		assert.Equal(t, MsgMissingSelection, appErr.Error())
	}
}

func TestAnalyze_BlankStockIsSearched(t *testing.T) {
	reddit := &fakeRedditRepository{}
	svc := newTestService(reddit, &fakeSentimentRepository{})

	_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Stock: " ", Subreddit: "stocks"})
	require.Error(t, err)
	assert.Equal(t, apperror.TypeNotFound, apperror.As(err).Type)
	require.NotEmpty(t, reddit.calls)
	assert.Equal(t, " ", reddit.calls[0].term)
}

func TestAnalyze_NoPosts(t *testing.T) {
	svc := newTestService(&fakeRedditRepository{}, &fakeSentimentRepository{})

	_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Stock: "AAPL", Subreddit: "stocks"})
	require.Error(t, err)
	assert.Equal(t, apperror.TypeNotFound, apperror.As(err).Type)
	assert.Equal(t, MsgNoPostsFound, err.Error())
}

func TestAnalyze_Summary(t *testing.T) {
	reddit := &fakeRedditRepository{results: map[string][]entity.Post{
		"top|GME":      makePosts("t", 4),
		"top|GameStop": {{ID: "t9", Title: "positive moon"}},
		"new|GME":      append(makePosts("t", 2), entity.Post{ID: "n1", Title: "negative dump"}, entity.Post{ID: "n2", Title: "🚀"}),
		"new|GameStop": {{ID: "n3", Title: "positive squeeze"}},
	}}
	scorer := &fakeSentimentRepository{scores: map[string]float64{"positive": 0.8, "negative": -0.6}}

	resp, err := newTestService(reddit, scorer).Analyze(context.Background(), &dto.AnalyzeRequest{Stock: "GME", Subreddit: "wallstreetbets"})
	require.NoError(t, err)

	assert.Len(t, resp.Results, 7)
	assert.Equal(t, 7, resp.Summary.TotalPosts)
	assert.Equal(t, 2, resp.Summary.PositivePosts)
	assert.Equal(t, 1, resp.Summary.NegativePosts)
	assert.Equal(t, 4, resp.Summary.NeutralPosts)
	assert.Equal(t, 0.8, resp.Summary.MaxSentiment)
	assert.Equal(t, -0.6, resp.Summary.MinSentiment)
	assert.Equal(t, 0.143, resp.Summary.AvgSentiment)
}
