package service

import (
	"context"

	"reddit-stock-sentiment/internal/entity"
	"reddit-stock-sentiment/internal/sentiment/dto"
	"reddit-stock-sentiment/internal/sentiment/repository"
	"reddit-stock-sentiment/pkg/apperror"
	"reddit-stock-sentiment/pkg/common"
	"reddit-stock-sentiment/pkg/logger"
	"reddit-stock-sentiment/pkg/metrics"
	"reddit-stock-sentiment/pkg/utils"
)

const (
	MsgMissingSelection = "Please select both stock and subreddit"
	MsgNoPostsFound     = "No posts found for this stock"
)

// SentimentService defines the sentiment analysis pipeline.
type SentimentService interface {
	// Analyze validates req, runs the pipeline and builds the response envelope.
	Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
	// AnalyzeStockSentiment scores the top and newest posts about stock in subreddit.
	AnalyzeStockSentiment(ctx context.Context, subreddit, stock string) ([]dto.SentimentResult, error)
}

type sentimentService struct {
	fetcher       *PostFetcher
	sentimentRepo repository.SentimentRepository
	logger        *logger.Logger
}

// NewSentimentService creates a new sentiment service.
func NewSentimentService(redditRepo repository.RedditRepository, sentimentRepo repository.SentimentRepository, log *logger.Logger) SentimentService {
	return &sentimentService{
		fetcher:       NewPostFetcher(redditRepo, log),
		sentimentRepo: sentimentRepo,
		logger:        log,
	}
}

func (s *sentimentService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	if req == nil || req.Stock == "" || req.Subreddit == "" {
		return nil, apperror.Validation(MsgMissingSelection)
	}

	results, err := s.AnalyzeStockSentiment(ctx, req.Subreddit, req.Stock)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperror.NotFound(MsgNoPostsFound)
	}

	summary := Summarize(results)
	s.logger.InfoContext(ctx, "Sentiment analysis completed",
		logger.StringField("stock", req.Stock),
		logger.StringField("subreddit", req.Subreddit),
		logger.IntField("total_posts", summary.TotalPosts),
		logger.Float64Field("avg_sentiment", summary.AvgSentiment),
	)

	return &dto.AnalyzeResponse{Results: results, Summary: summary}, nil
}

func (s *sentimentService) AnalyzeStockSentiment(ctx context.Context, subreddit, stock string) ([]dto.SentimentResult, error) {
	topPosts, err := s.fetcher.FetchPosts(ctx, subreddit, stock, common.DefaultSearchLimit, common.SortTop)
	if err != nil {
		return nil, err
	}
	newPosts, err := s.fetcher.FetchPosts(ctx, subreddit, stock, common.DefaultSearchLimit, common.SortNew)
	if err != nil {
		return nil, err
	}

	posts := uniquePosts(append(topPosts, newPosts...))

	results := make([]dto.SentimentResult, 0, len(posts))
	for _, post := range posts {
		text := utils.NormalizePostText(post.Title + " " + post.Body)
		if text == "" {
			continue
		}

		score, err := s.sentimentRepo.Score(ctx, text)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to score post", logger.ErrorField(err), logger.StringField("post_id", post.ID))
			return nil, apperror.External(err)
		}
		metrics.PostsScoredTotal.Inc()

		results = append(results, dto.SentimentResult{
			Timestamp:      utils.FormatTimestamp(post.CreatedAt),
			Post:           utils.Truncate(text, common.ExcerptMaxLength, common.ExcerptEllipsis),
			SentimentScore: round3(score),
			URL:            post.URL,
		})
	}

	s.logger.DebugContext(ctx, "Scored posts",
		logger.StringField("stock", stock),
		logger.StringField("subreddit", subreddit),
		logger.IntField("top_posts", len(topPosts)),
		logger.IntField("new_posts", len(newPosts)),
		logger.IntField("unique_posts", len(posts)),
		logger.IntField("results", len(results)),
	)

	return results, nil
}

// uniquePosts drops posts whose ID was already seen, keeping the first occurrence.
func uniquePosts(posts []entity.Post) []entity.Post {
	seen := make(map[string]struct{}, len(posts))
	unique := make([]entity.Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}
