// Package comment provides the HTTP handlers of the comment resources.
package comment

import (
	"time"

	"nc-news/internal/domain/entity"
)

type DTO struct {
	ID        int64     `json:"comment_id" example:"1"`
	ArticleID int64     `json:"article_id" example:"9"`
	Author    string    `json:"author" example:"butter_bridge"`
	Body      string    `json:"body" example:"Oh, I've got compassion running out of my nose, pal!"`
	Votes     int64     `json:"votes" example:"16"`
	CreatedAt time.Time `json:"created_at" example:"2020-04-06T12:17:00Z"`
}

type ListResponse struct {
	Comments []DTO `json:"comments"`
}

type Response struct {
	Comment DTO `json:"comment"`
}

func toDTO(c *entity.Comment) DTO {
	return DTO{
		ID:        c.ID,
		ArticleID: c.ArticleID,
		Author:    c.Author,
		Body:      c.Body,
		Votes:     c.Votes,
		CreatedAt: c.CreatedAt,
	}
}
