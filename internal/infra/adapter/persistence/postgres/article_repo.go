package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"

	"nc-news/internal/domain/entity"
	"nc-news/internal/pkg/query"
	"nc-news/internal/repository"
)

const selectArticle = `
SELECT a.article_id, a.author, a.title, a.body, a.topic, a.created_at, a.votes, a.article_img_url,
       COUNT(c.comment_id) AS comment_count
FROM articles a
LEFT JOIN comments c ON c.article_id = a.article_id
WHERE a.article_id = $1
GROUP BY a.article_id`

type ArticleRepo struct {
	db           DB
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(db DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
	}
}

// List validates the tokens, checks every filter value, then runs the page
// and total count statements concurrently.
func (repo *ArticleRepo) List(ctx context.Context, params repository.ArticleListParams) (repository.ArticlePage, error) {
	q, err := repo.queryBuilder.BuildList(params)
	if err != nil {
		return repository.ArticlePage{}, err
	}
	if err := checkAllConcurrently(ctx, repo.db, q.Checks); err != nil {
		return repository.ArticlePage{}, err
	}

	var (
		articles []*entity.Article
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = repo.listPage(gctx, q.List, q.ListArgs)
		return err
	})
	g.Go(func() error {
		if err := repo.db.QueryRowContext(gctx, q.Count, q.CountArgs...).Scan(&total); err != nil {
			return fmt.Errorf("List: Count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return repository.ArticlePage{}, err
	}

	return repository.ArticlePage{Articles: articles, TotalCount: total}, nil
}

func (repo *ArticleRepo) listPage(ctx context.Context, stmt string, args []any) ([]*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 10)
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.Author, &a.Title, &a.Topic,
			&a.CreatedAt, &a.Votes, nullable(&a.ImageURL), &a.CommentCount); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return articles, nil
}

// Get checks the id exists, then fetches the article with its comment count.
func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if err := Exists(ctx, repo.db, query.TableArticles, "article_id", id); err != nil {
		return nil, err
	}
	return getArticle(ctx, repo.db, id)
}

func getArticle(ctx context.Context, q Querier, id int64) (*entity.Article, error) {
	var a entity.Article
	err := q.QueryRowContext(ctx, selectArticle, id).Scan(&a.ID, &a.Author, &a.Title, &a.Body,
		&a.Topic, &a.CreatedAt, &a.Votes, nullable(&a.ImageURL), &a.CommentCount)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", noRowsAsNotFound(err, query.TableArticles, "article_id", id))
	}
	return &a, nil
}

// Create checks the author and topic, then inserts the article. Both run in
// one transaction so a concurrent delete surfaces as a foreign key violation.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	const stmt = `
INSERT INTO articles (author, title, body, topic, article_img_url)
VALUES ($1, $2, $3, $4, $5)
RETURNING article_id, author, title, body, topic, created_at, votes, article_img_url`

	var created entity.Article
	err := withTx(ctx, repo.db, func(tx *sql.Tx) error {
		if err := checkAll(ctx, tx, []query.ExistenceCheck{
			{Table: query.TableUsers, Column: "username", Value: article.Author},
			{Table: query.TableTopics, Column: "slug", Value: article.Topic},
		}); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, stmt,
			article.Author, article.Title, article.Body, article.Topic, article.ImageURL,
		).Scan(&created.ID, &created.Author, &created.Title, &created.Body,
			&created.Topic, &created.CreatedAt, &created.Votes, nullable(&created.ImageURL))
	})
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return &created, nil
}

// Update applies patch to the article and returns the resulting row.
func (repo *ArticleRepo) Update(ctx context.Context, id int64, patch repository.ArticlePatch) (*entity.Article, error) {
	p := patch.Build()

	var updated *entity.Article
	err := withTx(ctx, repo.db, func(tx *sql.Tx) error {
		if err := Exists(ctx, tx, query.TableArticles, "article_id", id); err != nil {
			return err
		}
		if err := checkAll(ctx, tx, p.Checks); err != nil {
			return err
		}

		if !p.Empty() {
			var args query.Args
			set := p.SetClause(&args)
			stmt := "UPDATE articles " + set + " WHERE article_id = " + args.Add(id)
			if _, err := tx.ExecContext(ctx, stmt, args.Values()...); err != nil {
				return err
			}
		}

		var err error
		updated, err = getArticle(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return updated, nil
}

// Delete removes the article. Comments are removed by the foreign key cascade.
func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	err := withTx(ctx, repo.db, func(tx *sql.Tx) error {
		if err := Exists(ctx, tx, query.TableArticles, "article_id", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE article_id = $1`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
