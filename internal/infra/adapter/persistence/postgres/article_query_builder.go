package postgres

import (
	"strings"

	"nc-news/internal/common/pagination"
	"nc-news/internal/pkg/query"
	"nc-news/internal/repository"
)

// articleSortColumns are the accepted sort_by values of the article listing.
var articleSortColumns = query.ColumnSet{
	"article_id":      query.QCol("a", "article_id"),
	"title":           query.QCol("a", "title"),
	"topic":           query.QCol("a", "topic"),
	"author":          query.QCol("a", "author"),
	"created_at":      query.QCol("a", "created_at"),
	"votes":           query.QCol("a", "votes"),
	"article_img_url": query.QCol("a", "article_img_url"),
	"comment_count":   query.Col("comment_count"),
}

// ArticleListQuery is a fully built article listing: the page statement,
// the total count statement, and the existence checks that gate both.
type ArticleListQuery struct {
	List      string
	ListArgs  []any
	Count     string
	CountArgs []any
	Checks    []query.ExistenceCheck
	Window    pagination.Window
}

// ArticleQueryBuilder builds the article listing statements.
// The WHERE clause is shared between the COUNT and SELECT statements.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildList validates the listing tokens and renders both statements.
// sort_by is checked first, then order, then the pagination tokens.
func (qb *ArticleQueryBuilder) BuildList(params repository.ArticleListParams) (ArticleListQuery, error) {
	sort, err := query.ResolveSort(articleSortColumns, params.SortBy, params.Order, query.QCol("a", "article_id"))
	if err != nil {
		return ArticleListQuery{}, err
	}
	window, err := pagination.Resolve(params.Limit, params.Page)
	if err != nil {
		return ArticleListQuery{}, err
	}

	var args query.Args
	pred := query.BuildFilters([]query.Filter{
		{Value: params.Topic, Table: query.TableTopics, Column: "slug", Filtered: query.QCol("a", "topic")},
		{Value: params.Author, Table: query.TableUsers, Column: "username", Filtered: query.QCol("a", "author")},
	}, &args)
	countArgs := append([]any(nil), args.Values()...)

	list := joinClauses(
		`SELECT a.article_id, a.author, a.title, a.topic, a.created_at, a.votes, a.article_img_url,
       COUNT(c.comment_id) AS comment_count
FROM articles a
LEFT JOIN comments c ON c.article_id = a.article_id`,
		pred.Where(),
		"GROUP BY a.article_id",
		sort.Clause(),
		window.Clause(&args),
	)
	count := joinClauses("SELECT COUNT(*) FROM articles a", pred.Where())

	return ArticleListQuery{
		List:      list,
		ListArgs:  args.Values(),
		Count:     count,
		CountArgs: countArgs,
		Checks:    pred.Checks,
		Window:    window,
	}, nil
}

// joinClauses joins the non-empty clauses with newlines.
func joinClauses(clauses ...string) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "\n")
}
