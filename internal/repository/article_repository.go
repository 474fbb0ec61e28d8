package repository

import (
	"context"

	"nc-news/internal/domain/entity"
	"nc-news/internal/pkg/query"
)

// ArticleListParams carries the raw listing tokens of GET /articles.
// Topic and Author are nil when the filter is not requested; the remaining
// fields are validated by the repository.
type ArticleListParams struct {
	SortBy string
	Order  string
	Topic  *string
	Author *string
	Limit  string
	Page   string
}

// ArticlePage is one window of a filtered article listing together with the
// number of rows matching the filters regardless of the window.
type ArticlePage struct {
	Articles   []*entity.Article
	TotalCount int64
}

// ArticlePatch lists the optional changes of PATCH /articles/{article_id}.
// A nil field is left untouched.
type ArticlePatch struct {
	IncVotes *int64
	Body     *string
	Title    *string
	Topic    *string
}

// Build maps the patch to ordered column assignments plus the referential
// checks that must pass before they are applied.
func (p ArticlePatch) Build() query.Patch {
	var out query.Patch
	if p.IncVotes != nil {
		out.Assignments = append(out.Assignments, query.Increment("votes", *p.IncVotes))
	}
	if p.Body != nil {
		out.Assignments = append(out.Assignments, query.Set("body", *p.Body))
	}
	if p.Title != nil {
		out.Assignments = append(out.Assignments, query.Set("title", *p.Title))
	}
	if p.Topic != nil {
		out.Assignments = append(out.Assignments, query.Set("topic", *p.Topic))
		out.Checks = append(out.Checks, query.ExistenceCheck{Table: query.TableTopics, Column: "slug", Value: *p.Topic})
	}
	return out
}

// ArticleRepository is the article query builder and executor.
// Failures are *apperror.Error values or storage errors for apperror.Normalize.
type ArticleRepository interface {
	// List returns the requested window of articles matching the filters.
	// Unknown topic or author values fail with NotFound before the listing runs.
	List(ctx context.Context, params ArticleListParams) (ArticlePage, error)
	// Get returns the article with its comment count, or NotFound.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// Create inserts the article and returns the stored row.
	Create(ctx context.Context, article *entity.Article) (*entity.Article, error)
	// Update applies the patch and returns the resulting row. An empty patch
	// returns the current row unchanged.
	Update(ctx context.Context, id int64, patch ArticlePatch) (*entity.Article, error)
	// Delete removes the article; its comments go with it.
	Delete(ctx context.Context, id int64) error
}
