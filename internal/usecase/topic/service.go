// Package topic provides the use cases of topics.
package topic

import (
	"context"
	"fmt"

	"nc-news/internal/apperror"
	"nc-news/internal/domain/entity"
	"nc-news/internal/observability/metrics"
	"nc-news/internal/repository"
)

// CreateInput represents the payload of POST /topics.
type CreateInput struct {
	Slug        string
	Description string
}

type Service struct {
	Repo repository.TopicRepository
}

func (s *Service) List(ctx context.Context) ([]*entity.Topic, error) {
	topics, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// Create requires a slug. The description defaults to the slug.
// A duplicate slug surfaces as the storage unique violation.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Topic, error) {
	if in.Slug == "" {
		return nil, apperror.MissingField("slug")
	}
	t := &entity.Topic{Slug: in.Slug, Description: in.Description}
	if t.Description == "" {
		t.Description = t.Slug
	}

	created, err := s.Repo.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	metrics.RecordCreated("topic")
	return created, nil
}
