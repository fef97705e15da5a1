package service

import (
	"context"

	"reddit-stock-sentiment/internal/entity"
	"reddit-stock-sentiment/internal/sentiment/repository"
	"reddit-stock-sentiment/pkg/apperror"
	"reddit-stock-sentiment/pkg/logger"
)

// PostFetcher collects posts for a stock across its expanded search terms.
type PostFetcher struct {
	redditRepo repository.RedditRepository
	logger     *logger.Logger
}

// NewPostFetcher creates a new PostFetcher.
func NewPostFetcher(redditRepo repository.RedditRepository, log *logger.Logger) *PostFetcher {
	return &PostFetcher{redditRepo: redditRepo, logger: log}
}

// FetchPosts searches subreddit for every expanded form of query and returns
// at most limit posts with distinct IDs, in discovery order.
func (f *PostFetcher) FetchPosts(ctx context.Context, subreddit, query string, limit int, sort string) ([]entity.Post, error) {
	if limit <= 0 {
		return []entity.Post{}, nil
	}

	seen := make(map[string]struct{})
	posts := make([]entity.Post, 0, limit)

	for _, term := range ExpandQuery(query) {
		found, err := f.redditRepo.SearchPosts(ctx, subreddit, term, sort, limit)
		if err != nil {
			f.logger.ErrorContext(ctx, "Failed to search subreddit",
				logger.ErrorField(err),
				logger.StringField("subreddit", subreddit),
				logger.StringField("term", term),
				logger.StringField("sort", sort),
			)
			return nil, apperror.External(err)
		}

		for _, post := range found {
			if _, ok := seen[post.ID]; ok {
				continue
			}
			seen[post.ID] = struct{}{}
			posts = append(posts, post)
			if len(posts) >= limit {
				break
			}
		}
		if len(posts) >= limit {
			break
		}
	}

	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}
