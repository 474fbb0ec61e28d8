package article

import (
	"context"
	"fmt"

	"nc-news/internal/apperror"
	"nc-news/internal/domain/entity"
	"nc-news/internal/observability/metrics"
	"nc-news/internal/repository"
)

const resourceName = "article"

// CreateInput represents the payload of POST /articles.
type CreateInput struct {
	Author   string
	Title    string
	Body     string
	Topic    string
	ImageURL string
}

// validate reports the first missing required field in payload order.
func (in CreateInput) validate() error {
	switch {
	case in.Author == "":
		return apperror.MissingField("author")
	case in.Title == "":
		return apperror.MissingField("title")
	case in.Body == "":
		return apperror.MissingField("body")
	case in.Topic == "":
		return apperror.MissingField("topic")
	}
	return nil
}

// Service provides article management use cases.
// It validates input and delegates persistence to the repository.
type Service struct {
	Repo repository.ArticleRepository
}

// List returns one window of articles plus the filtered total.
// Token validation and filter existence checks happen in the repository.
func (s *Service) List(ctx context.Context, params repository.ArticleListParams) (repository.ArticlePage, error) {
	page, err := s.Repo.List(ctx, params)
	if err != nil {
		return repository.ArticlePage{}, fmt.Errorf("list articles: %w", err)
	}
	return page, nil
}

// Get retrieves a single article with its comment count.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

// Create validates the input, applies the default image and stores the article.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	art := &entity.Article{
		Author:   in.Author,
		Title:    in.Title,
		Body:     in.Body,
		Topic:    in.Topic,
		ImageURL: in.ImageURL,
	}
	if art.ImageURL == "" {
		art.ImageURL = entity.DefaultArticleImageURL
	}

	created, err := s.Repo.Create(ctx, art)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	metrics.RecordCreated(resourceName)
	return created, nil
}

// Update applies patch and returns the resulting article.
// An empty patch returns the article unchanged.
func (s *Service) Update(ctx context.Context, id int64, patch repository.ArticlePatch) (*entity.Article, error) {
	updated, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if patch.IncVotes != nil {
		metrics.RecordVotes(resourceName, *patch.IncVotes)
	}
	return updated, nil
}

// Delete removes an article and, through the schema, its comments.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	metrics.RecordDeleted(resourceName)
	return nil
}
