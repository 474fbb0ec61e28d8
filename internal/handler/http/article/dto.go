// Package article provides the HTTP handlers of the /articles resource.
package article

import (
	"time"

	"nc-news/internal/domain/entity"
)

// ListItemDTO is an article as it appears in listings, without its body.
type ListItemDTO struct {
	ID           int64     `json:"article_id" example:"3"`
	Author       string    `json:"author" example:"icellusedkars"`
	Title        string    `json:"title" example:"Eight pug gifs that remind me of mitch"`
	Topic        string    `json:"topic" example:"mitch"`
	CreatedAt    time.Time `json:"created_at" example:"2020-11-03T09:12:00Z"`
	Votes        int64     `json:"votes" example:"0"`
	ImageURL     string    `json:"article_img_url" example:"https://images.pexels.com/photos/158651/news-newsletter-newspaper-information-158651.jpeg?w=700&h=700"`
	CommentCount int64     `json:"comment_count" example:"2"`
}

// DTO is a single article including its body.
type DTO struct {
	ID           int64     `json:"article_id" example:"1"`
	Author       string    `json:"author" example:"butter_bridge"`
	Title        string    `json:"title" example:"Living in the shadow of a great man"`
	Body         string    `json:"body" example:"I find this existence challenging"`
	Topic        string    `json:"topic" example:"mitch"`
	CreatedAt    time.Time `json:"created_at" example:"2020-07-09T20:11:00Z"`
	Votes        int64     `json:"votes" example:"100"`
	ImageURL     string    `json:"article_img_url" example:"https://images.pexels.com/photos/158651/news-newsletter-newspaper-information-158651.jpeg?w=700&h=700"`
	CommentCount int64     `json:"comment_count" example:"11"`
}

// ListResponse is the body of GET /articles.
type ListResponse struct {
	Articles   []ListItemDTO `json:"articles"`
	TotalCount int64         `json:"total_count" example:"13"`
}

// Response wraps a single article.
type Response struct {
	Article DTO `json:"article"`
}

func toListItem(a *entity.Article) ListItemDTO {
	return ListItemDTO{
		ID:           a.ID,
		Author:       a.Author,
		Title:        a.Title,
		Topic:        a.Topic,
		CreatedAt:    a.CreatedAt,
		Votes:        a.Votes,
		ImageURL:     a.ImageURL,
		CommentCount: a.CommentCount,
	}
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:           a.ID,
		Author:       a.Author,
		Title:        a.Title,
		Body:         a.Body,
		Topic:        a.Topic,
		CreatedAt:    a.CreatedAt,
		Votes:        a.Votes,
		ImageURL:     a.ImageURL,
		CommentCount: a.CommentCount,
	}
}
