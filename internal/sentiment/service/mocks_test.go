package service

import (
	"context"
	"fmt"
	"strings"

	"reddit-stock-sentiment/internal/entity"
)

type searchCall struct {
	subreddit string
	term      string
	sort      string
	limit     int
}

// fakeRedditRepository serves canned posts per "sort|term".
type fakeRedditRepository struct {
	results map[string][]entity.Post
	err     error
	calls   []searchCall
}

func (f *fakeRedditRepository) SearchPosts(_ context.Context, subreddit, query, sort string, limit int) ([]entity.Post, error) {
	f.calls = append(f.calls, searchCall{subreddit: subreddit, term: query, sort: sort, limit: limit})
	if f.err != nil {
		return nil, f.err
	}
	posts := f.results[sort+"|"+query]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// fakeSentimentRepository returns scores keyed by a substring of the text.
type fakeSentimentRepository struct {
	scores   map[string]float64
	fallback float64
	err      error
	texts    []string
}

func (f *fakeSentimentRepository) Score(_ context.Context, text string) (float64, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return 0, f.err
	}
	for key, score := range f.scores {
		if strings.Contains(text, key) {
			return score, nil
		}
	}
	return f.fallback, nil
}

func makePosts(prefix string, n int) []entity.Post {
	posts := make([]entity.Post, n)
	for i := range posts {
		id := fmt.Sprintf("%s%d", prefix, i+1)
		posts[i] = entity.Post{ID: id, Title: "title " + id, Body: "body " + id, URL: "https://reddit.com/" + id}
	}
	return posts
}
