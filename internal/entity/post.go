package entity

import "time"

// Post is a forum submission returned by a subreddit search.
type Post struct {
	ID           string
	Title        string
	Body         string
	Score        int
	URL          string
	Subreddit    string
	CreatedAt    time.Time
	CommentCount int
}
