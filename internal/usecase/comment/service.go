// Package comment provides the use cases of article comments.
package comment

import (
	"context"
	"fmt"

	"nc-news/internal/apperror"
	"nc-news/internal/domain/entity"
	"nc-news/internal/observability/metrics"
	"nc-news/internal/repository"
)

const resourceName = "comment"

// ErrInvalidCommentID is reported when a comment id path segment is not an integer.
var ErrInvalidCommentID = apperror.BadRequest("Invalid comment_id")

// CreateInput represents the payload of POST /articles/{article_id}/comments.
type CreateInput struct {
	ArticleID int64
	Username  string
	Body      string
}

type Service struct {
	Repo repository.CommentRepository
}

// ListByArticle returns one window of the article's comments.
func (s *Service) ListByArticle(ctx context.Context, params repository.CommentListParams) ([]*entity.Comment, error) {
	comments, err := s.Repo.ListByArticle(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Comment, error) {
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

// Create requires username and body. The article and the author are checked
// by the repository before anything is written.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Comment, error) {
	if in.Username == "" {
		return nil, apperror.MissingField("username")
	}
	if in.Body == "" {
		return nil, apperror.MissingField("body")
	}

	created, err := s.Repo.Create(ctx, &entity.Comment{
		ArticleID: in.ArticleID,
		Author:    in.Username,
		Body:      in.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	metrics.RecordCreated(resourceName)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch repository.CommentPatch) (*entity.Comment, error) {
	updated, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if patch.IncVotes != nil {
		metrics.RecordVotes(resourceName, *patch.IncVotes)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	metrics.RecordDeleted(resourceName)
	return nil
}
