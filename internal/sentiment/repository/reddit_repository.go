package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reddit-stock-sentiment/internal/entity"
	"reddit-stock-sentiment/internal/sentiment/config"
	"reddit-stock-sentiment/pkg/common"
	"reddit-stock-sentiment/pkg/logger"
	"reddit-stock-sentiment/pkg/metrics"
	"reddit-stock-sentiment/pkg/utils"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	accessTokenCacheKey = "reddit:access_token"
	// tokenExpiryMargin is subtracted from expires_in so a token is never used right at expiry.
	tokenExpiryMargin = time.Minute
	maxErrorBodyBytes = 512
)

// RedditRepository searches subreddits through the Reddit API.
type RedditRepository interface {
	SearchPosts(ctx context.Context, subreddit, query, sort string, limit int) ([]entity.Post, error)
}

type redditRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	tokenCache     *cache.Cache
	tokenGroup     singleflight.Group
}

// NewRedditRepository creates a RedditRepository authenticating with the
// application-only OAuth flow. One instance is shared by all requests.
func NewRedditRepository(cfg *config.Config, log *logger.Logger) RedditRepository {
	perMinute := cfg.Reddit.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)

	return &redditRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Reddit.Timeout,
			// Reddit redirects searches on unknown subreddits to the subreddit search page.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		tokenCache:     cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

type redditOAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

type redditListingResponse struct {
	Data struct {
		Children []struct {
			Kind string         `json:"kind"`
			Data redditPostData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPostData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Score       int     `json:"score"`
	URL         string  `json:"url"`
	Subreddit   string  `json:"subreddit"`
	CreatedUTC  float64 `json:"created_utc"`
	NumComments int     `json:"num_comments"`
}

// SearchPosts returns up to limit posts of subreddit matching query in the
// given sort order. "top" searches are restricted to the past month.
func (r *redditRepository) SearchPosts(ctx context.Context, subreddit, query, sort string, limit int) ([]entity.Post, error) {
	token, err := r.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	timeFilter := "all"
	if sort == common.SortTop {
		timeFilter = common.TimeFilterMonth
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "on")
	params.Set("sort", sort)
	params.Set("t", timeFilter)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("raw_json", "1")

	searchURL := fmt.Sprintf("%s/r/%s/search?%s", strings.TrimRight(r.cfg.Reddit.BaseURL, "/"), url.PathEscape(subreddit), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create reddit search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, status, err := r.do(ctx, "search", req)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusUnauthorized:
		r.tokenCache.Delete(accessTokenCacheKey)
		return nil, fmt.Errorf("received 401 HTTP response from reddit search: %s", truncateBody(body))
	case status == http.StatusForbidden:
		return nil, fmt.Errorf("received 403 HTTP response: subreddit %q is private or banned", subreddit)
	case status == http.StatusNotFound || (status >= 300 && status < 400):
		return nil, fmt.Errorf("subreddit %q not found", subreddit)
	case status == http.StatusTooManyRequests:
		return nil, fmt.Errorf("received 429 HTTP response: reddit rate limit reached")
	case status != http.StatusOK:
		return nil, fmt.Errorf("received %d HTTP response from reddit search: %s", status, truncateBody(body))
	}

	var listing redditListingResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode reddit search response: %w", err)
	}

	posts := make([]entity.Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if child.Kind != "" && child.Kind != "t3" {
			continue
		}
		p := child.Data
		posts = append(posts, entity.Post{
			ID:           p.ID,
			Title:        p.Title,
			Body:         p.Selftext,
			Score:        p.Score,
			URL:          p.URL,
			Subreddit:    p.Subreddit,
			CreatedAt:    utils.UnixSeconds(p.CreatedUTC),
			CommentCount: p.NumComments,
		})
	}

	r.log.DebugContext(ctx, "Reddit search completed",
		logger.StringField("subreddit", subreddit),
		logger.StringField("query", query),
		logger.StringField("sort", sort),
		logger.IntField("limit", limit),
		logger.IntField("posts", len(posts)),
	)

	return posts, nil
}

// accessToken returns the cached bearer token or fetches a new one.
// Concurrent callers share a single token request, which is not canceled
// when the caller that started it goes away.
func (r *redditRepository) accessToken(ctx context.Context) (string, error) {
	if cached, ok := r.tokenCache.Get(accessTokenCacheKey); ok {
		return cached.(string), nil
	}

	token, err, _ := r.tokenGroup.Do(accessTokenCacheKey, func() (any, error) {
		if cached, ok := r.tokenCache.Get(accessTokenCacheKey); ok {
			return cached.(string), nil
		}
		return r.fetchAccessToken(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (r *redditRepository) fetchAccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Reddit.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create reddit oauth request: %w", err)
	}
	req.SetBasicAuth(r.cfg.Reddit.ClientID, r.cfg.Reddit.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, status, err := r.do(ctx, "access_token", req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("received %d HTTP response from reddit oauth: %s", status, truncateBody(body))
	}

	var oauthResp redditOAuthResponse
	if err := json.Unmarshal(body, &oauthResp); err != nil {
		return "", fmt.Errorf("failed to decode reddit oauth response: %w", err)
	}
	if oauthResp.Error != "" {
		return "", fmt.Errorf("reddit oauth error: %s", oauthResp.Error)
	}
	if oauthResp.AccessToken == "" {
		return "", fmt.Errorf("reddit oauth response did not contain an access token")
	}

	ttl := time.Duration(oauthResp.ExpiresIn)*time.Second - tokenExpiryMargin
	if ttl > 0 {
		r.tokenCache.Set(accessTokenCacheKey, oauthResp.AccessToken, ttl)
	}

	r.log.DebugContext(ctx, "Reddit OAuth token refreshed", logger.IntField("expires_in", oauthResp.ExpiresIn))
	return oauthResp.AccessToken, nil
}

// do waits for the rate limiter, sends req and returns the body and status code.
func (r *redditRepository) do(ctx context.Context, endpoint string, req *http.Request) ([]byte, int, error) {
	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("url", req.URL.Redacted()),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for reddit request limit", fields...)
		return nil, 0, err
	}

	req.Header.Set("User-Agent", r.cfg.Reddit.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	metrics.RedditRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedditRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Reddit API", fields...)
		return nil, 0, fmt.Errorf("failed to send request to reddit: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RedditRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from Reddit API", fields...)
		return nil, 0, fmt.Errorf("failed to read reddit response: %w", err)
	}

	metrics.RedditRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.WarnContext(ctx, "Received non-OK response from Reddit API", fields...)
	}

	return body, resp.StatusCode, nil
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBodyBytes {
		return string(body[:maxErrorBodyBytes])
	}
	return string(body)
}
