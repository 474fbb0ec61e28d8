package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"nc-news/internal/common/pagination"
	"nc-news/internal/domain/entity"
	"nc-news/internal/pkg/query"
	"nc-news/internal/repository"
)

var commentSortColumns = query.ColumnSet{
	"comment_id": query.Col("comment_id"),
	"article_id": query.Col("article_id"),
	"author":     query.Col("author"),
	"body":       query.Col("body"),
	"votes":      query.Col("votes"),
	"created_at": query.Col("created_at"),
}

const commentColumns = "comment_id, article_id, author, body, votes, created_at"

type CommentRepo struct {
	db DB
}

func NewCommentRepo(db DB) repository.CommentRepository {
	return &CommentRepo{db: db}
}

// buildCommentList renders the listing statement of one article's comments.
func buildCommentList(params repository.CommentListParams) (string, []any, error) {
	sort, err := query.ResolveSort(commentSortColumns, params.SortBy, params.Order, query.Col("comment_id"))
	if err != nil {
		return "", nil, err
	}
	window, err := pagination.Resolve(params.Limit, params.Page)
	if err != nil {
		return "", nil, err
	}

	var args query.Args
	stmt := joinClauses(
		"SELECT "+commentColumns+" FROM comments",
		"WHERE article_id = "+args.Add(params.ArticleID),
		sort.Clause(),
		window.Clause(&args),
	)
	return stmt, args.Values(), nil
}

func (repo *CommentRepo) ListByArticle(ctx context.Context, params repository.CommentListParams) ([]*entity.Comment, error) {
	stmt, args, err := buildCommentList(params)
	if err != nil {
		return nil, err
	}
	if err := Exists(ctx, repo.db, query.TableArticles, "article_id", params.ArticleID); err != nil {
		return nil, err
	}

	rows, err := repo.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("ListByArticle: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]*entity.Comment, 0, 10)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByArticle: Scan: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByArticle: %w", err)
	}
	return comments, nil
}

func (repo *CommentRepo) Get(ctx context.Context, id int64) (*entity.Comment, error) {
	c, err := getComment(ctx, repo.db, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return c, nil
}

func getComment(ctx context.Context, q Querier, id int64) (*entity.Comment, error) {
	row := q.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE comment_id = $1", id)
	c, err := scanComment(row)
	if err != nil {
		return nil, noRowsAsNotFound(err, query.TableComments, "comment_id", id)
	}
	return c, nil
}

// Create checks the article, then the author, then inserts the comment, all
// in one transaction.
func (repo *CommentRepo) Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	const stmt = `
INSERT INTO comments (article_id, author, body)
VALUES ($1, $2, $3)
RETURNING ` + commentColumns

	var created *entity.Comment
	err := withTx(ctx, repo.db, func(tx *sql.Tx) error {
		if err := checkAll(ctx, tx, []query.ExistenceCheck{
			{Table: query.TableArticles, Column: "article_id", Value: comment.ArticleID},
			{Table: query.TableUsers, Column: "username", Value: comment.Author},
		}); err != nil {
			return err
		}
		var err error
		created, err = scanComment(tx.QueryRowContext(ctx, stmt, comment.ArticleID, comment.Author, comment.Body))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return created, nil
}

// Update applies patch to the comment. An empty patch returns the row as is.
func (repo *CommentRepo) Update(ctx context.Context, id int64, patch repository.CommentPatch) (*entity.Comment, error) {
	p := patch.Build()

	var updated *entity.Comment
	err := withTx(ctx, repo.db, func(tx *sql.Tx) error {
		if err := Exists(ctx, tx, query.TableComments, "comment_id", id); err != nil {
			return err
		}
		if err := checkAll(ctx, tx, p.Checks); err != nil {
			return err
		}

		var err error
		if p.Empty() {
			updated, err = getComment(ctx, tx, id)
			return err
		}

		var args query.Args
		set := p.SetClause(&args)
		stmt := "UPDATE comments " + set + " WHERE comment_id = " + args.Add(id) + " RETURNING " + commentColumns
		updated, err = scanComment(tx.QueryRowContext(ctx, stmt, args.Values()...))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return updated, nil
}

func (repo *CommentRepo) Delete(ctx context.Context, id int64) error {
	err := withTx(ctx, repo.db, func(tx *sql.Tx) error {
		if err := Exists(ctx, tx, query.TableComments, "comment_id", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*entity.Comment, error) {
	var c entity.Comment
	if err := row.Scan(&c.ID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
