package repository

import (
	"context"

	"nc-news/internal/domain/entity"
	"nc-news/internal/pkg/query"
)

// CommentListParams carries the raw listing tokens of
// GET /articles/{article_id}/comments.
type CommentListParams struct {
	ArticleID int64
	SortBy    string
	Order     string
	Limit     string
	Page      string
}

// CommentPatch lists the optional changes of PATCH /comments/{comment_id}.
type CommentPatch struct {
	IncVotes *int64
	Body     *string
}

// Build maps the patch to ordered column assignments.
func (p CommentPatch) Build() query.Patch {
	var out query.Patch
	if p.IncVotes != nil {
		out.Assignments = append(out.Assignments, query.Increment("votes", *p.IncVotes))
	}
	if p.Body != nil {
		out.Assignments = append(out.Assignments, query.Set("body", *p.Body))
	}
	return out
}

// CommentRepository is the comment query builder and executor.
type CommentRepository interface {
	// ListByArticle returns the requested window of an article's comments,
	// or NotFound when the article does not exist.
	ListByArticle(ctx context.Context, params CommentListParams) ([]*entity.Comment, error)
	Get(ctx context.Context, id int64) (*entity.Comment, error)
	// Create checks the article and the author, then inserts the comment.
	// Nothing is written when a check fails.
	Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	Update(ctx context.Context, id int64, patch CommentPatch) (*entity.Comment, error)
	Delete(ctx context.Context, id int64) error
}
