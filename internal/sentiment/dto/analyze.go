package dto

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Stock     string `json:"stock"`
	Subreddit string `json:"subreddit"`
}

// SentimentResult is the scored form of a single post.
type SentimentResult struct {
	Timestamp      string  `json:"timestamp"`
	Post           string  `json:"post"`
	SentimentScore float64 `json:"sentiment_score"`
	URL            string  `json:"url"`
}

// Summary aggregates the scores of a non-empty result set.
type Summary struct {
	TotalPosts    int     `json:"total_posts"`
	AvgSentiment  float64 `json:"avg_sentiment"`
	MaxSentiment  float64 `json:"max_sentiment"`
	MinSentiment  float64 `json:"min_sentiment"`
	PositivePosts int     `json:"positive_posts"`
	NegativePosts int     `json:"negative_posts"`
	NeutralPosts  int     `json:"neutral_posts"`
}

// AnalyzeResponse is the success body of POST /analyze.
type AnalyzeResponse struct {
	Results []SentimentResult `json:"results"`
	Summary Summary           `json:"summary"`
}

// OptionsResponse lists the selectable stocks and subreddits.
type OptionsResponse struct {
	Stocks     []string `json:"stocks"`
	Subreddits []string `json:"subreddits"`
}
