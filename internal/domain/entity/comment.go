package entity

import "time"

// Comment is a user's reply to an article.
type Comment struct {
	ID        int64
	ArticleID int64
	Author    string
	Body      string
	Votes     int64
	CreatedAt time.Time
}
