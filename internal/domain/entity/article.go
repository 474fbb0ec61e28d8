// Package entity defines the core domain entities of the news API: articles,
// their comments, the topics they are filed under and the users who write them.
package entity

import "time"

// DefaultArticleImageURL is stored when an article is created without an image.
const DefaultArticleImageURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// Article represents a news article written by a user under a topic.
// CommentCount is derived from the comments table and never stored.
type Article struct {
	ID           int64
	Author       string
	Title        string
	Body         string
	Topic        string
	CreatedAt    time.Time
	Votes        int64
	ImageURL     string
	CommentCount int64
}
