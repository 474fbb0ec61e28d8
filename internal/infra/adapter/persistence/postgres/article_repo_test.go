package postgres_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"nc-news/internal/apperror"
	"nc-news/internal/domain/entity"
	pg "nc-news/internal/infra/adapter/persistence/postgres"
	"nc-news/internal/repository"
)

/* ─────────────────────────── helpers ─────────────────────────── */

const (
	existsArticle = `SELECT EXISTS (SELECT 1 FROM "articles" WHERE "article_id" = $1)`
	existsTopic   = `SELECT EXISTS (SELECT 1 FROM "topics" WHERE "slug" = $1)`
	existsUser    = `SELECT EXISTS (SELECT 1 FROM "users" WHERE "username" = $1)`
	existsComment = `SELECT EXISTS (SELECT 1 FROM "comments" WHERE "comment_id" = $1)`
)

var created = time.Date(2020, 11, 3, 21, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

func existsRow(found bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"exists"}).AddRow(found)
}

func articleRow(a *entity.Article) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"article_id", "author", "title", "body", "topic",
		"created_at", "votes", "article_img_url", "comment_count",
	}).AddRow(
		a.ID, a.Author, a.Title, a.Body, a.Topic,
		a.CreatedAt, a.Votes, a.ImageURL, a.CommentCount,
	)
}

func listRows(articles ...*entity.Article) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"article_id", "author", "title", "topic",
		"created_at", "votes", "article_img_url", "comment_count",
	})
	for _, a := range articles {
		rows.AddRow(a.ID, a.Author, a.Title, a.Topic, a.CreatedAt, a.Votes, a.ImageURL, a.CommentCount)
	}
	return rows
}

func sampleArticle() *entity.Article {
	return &entity.Article{
		ID: 13, Author: "butter_bridge", Title: "Another article about Mitch",
		Body: "There will never be enough articles about Mitch!", Topic: "mitch",
		CreatedAt: created, Votes: 0, ImageURL: entity.DefaultArticleImageURL,
		CommentCount: 0,
	}
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func assertKind(t *testing.T, err error, kind apperror.Kind, details string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %v, got nil", kind)
	}
	got := apperror.Normalize(err)
	if got.Kind != kind {
		t.Fatalf("kind = %v, want %v (err=%v)", got.Kind, kind, err)
	}
	if details != "" && got.Details != details {
		t.Errorf("details = %q, want %q", got.Details, details)
	}
}

/* ─────────────────────────── 1. Get ─────────────────────────── */

func TestArticleRepo_Get(t *testing.T) {
	db, mock := newMock(t)
	want := sampleArticle()
	want.CommentCount = 2

	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).
		WithArgs(int64(13)).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.article_id = $1")).
		WithArgs(int64(13)).
		WillReturnRows(articleRow(want))

	got, err := pg.NewArticleRepo(db).Get(context.Background(), 13)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Get_NullImageURL(t *testing.T) {
	db, mock := newMock(t)
	a := sampleArticle()

	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).
		WithArgs(int64(13)).
		WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.article_id = $1")).
		WithArgs(int64(13)).
		WillReturnRows(sqlmock.NewRows([]string{
			"article_id", "author", "title", "body", "topic",
			"created_at", "votes", "article_img_url", "comment_count",
		}).AddRow(a.ID, a.Author, a.Title, a.Body, a.Topic, a.CreatedAt, a.Votes, nil, a.CommentCount))

	got, err := pg.NewArticleRepo(db).Get(context.Background(), 13)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty for NULL", got.ImageURL)
	}
	if got.Title != a.Title {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestArticleRepo_Get_NotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).
		WithArgs(int64(999)).
		WillReturnRows(existsRow(false))

	_, err := pg.NewArticleRepo(db).Get(context.Background(), 999)
	assertKind(t, err, apperror.KindNotFound, "article_id '999' was not found in articles")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 2. List ─────────────────────────── */

func TestArticleRepo_List_Filtered(t *testing.T) {
	db, mock := newMock(t)
	mock.MatchExpectationsInOrder(false)

	a := sampleArticle()
	mock.ExpectQuery(regexp.QuoteMeta(existsTopic)).
		WithArgs("mitch").
		WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(existsUser)).
		WithArgs("butter_bridge").
		WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY a.article_id")).
		WithArgs("mitch", "butter_bridge", int64(5), int64(5)).
		WillReturnRows(listRows(a))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles a")).
		WithArgs("mitch", "butter_bridge").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	page, err := pg.NewArticleRepo(db).List(context.Background(), repository.ArticleListParams{
		SortBy: "votes", Order: "asc",
		Topic: strPtr("mitch"), Author: strPtr("butter_bridge"),
		Limit: "5", Page: "2",
	})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if page.TotalCount != 6 || len(page.Articles) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if page.Articles[0].Body != "" {
		t.Errorf("listing must not carry the body, got %q", page.Articles[0].Body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_List_UnknownTopic(t *testing.T) {
	for _, topic := range []string{"not-a-topic", ""} {
		t.Run(topic, func(t *testing.T) {
			db, mock := newMock(t)

			mock.ExpectQuery(regexp.QuoteMeta(existsTopic)).
				WithArgs(topic).
				WillReturnRows(existsRow(false))

			_, err := pg.NewArticleRepo(db).List(context.Background(), repository.ArticleListParams{
				SortBy: "created_at", Order: "desc", Topic: strPtr(topic), Limit: "10", Page: "1",
			})
			assertKind(t, err, apperror.KindNotFound, "slug '"+topic+"' was not found in topics")

			// the listing statement never ran
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestArticleRepo_List_InvalidTokensRunNothing(t *testing.T) {
	db, mock := newMock(t)
	repo := pg.NewArticleRepo(db)

	_, err := repo.List(context.Background(), repository.ArticleListParams{
		SortBy: "created_at", Order: "up", Limit: "10", Page: "1",
	})
	assertKind(t, err, apperror.KindBadRequest, "Invalid order query")

	_, err = repo.List(context.Background(), repository.ArticleListParams{
		SortBy: "created_at", Order: "desc", Limit: "ten", Page: "1",
	})
	assertKind(t, err, apperror.KindBadRequest, "Invalid limit: must be a whole number")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_List_StorageErrorIsNormalized(t *testing.T) {
	db, mock := newMock(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY a.article_id")).
		WillReturnError(&pgconn.PgError{Code: "42703", Message: `column "nope" does not exist`})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))

	_, err := pg.NewArticleRepo(db).List(context.Background(), repository.ArticleListParams{
		SortBy: "created_at", Order: "desc", Limit: "10", Page: "1",
	})
	assertKind(t, err, apperror.KindBadRequest, "")
}

/* ─────────────────────────── 3. Create ─────────────────────────── */

func TestArticleRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	in := &entity.Article{
		Author: "lurker", Title: "Cats time", Body: "owning cats", Topic: "cats",
		ImageURL: entity.DefaultArticleImageURL,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsUser)).WithArgs("lurker").WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(existsTopic)).WithArgs("cats").WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs("lurker", "Cats time", "owning cats", "cats", entity.DefaultArticleImageURL).
		WillReturnRows(sqlmock.NewRows([]string{
			"article_id", "author", "title", "body", "topic", "created_at", "votes", "article_img_url",
		}).AddRow(14, "lurker", "Cats time", "owning cats", "cats", created, 0, entity.DefaultArticleImageURL))
	mock.ExpectCommit()

	got, err := pg.NewArticleRepo(db).Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	want := &entity.Article{
		ID: 14, Author: "lurker", Title: "Cats time", Body: "owning cats", Topic: "cats",
		CreatedAt: created, ImageURL: entity.DefaultArticleImageURL,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Create_UnknownTopicRollsBack(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsUser)).WithArgs("lurker").WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(existsTopic)).WithArgs("dogs").WillReturnRows(existsRow(false))
	mock.ExpectRollback()

	_, err := pg.NewArticleRepo(db).Create(context.Background(), &entity.Article{
		Author: "lurker", Title: "t", Body: "b", Topic: "dogs",
	})
	assertKind(t, err, apperror.KindNotFound, "slug 'dogs' was not found in topics")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 4. Update ─────────────────────────── */

func TestArticleRepo_Update_IncVotes(t *testing.T) {
	db, mock := newMock(t)
	after := sampleArticle()
	after.Votes = 6

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(13)).WillReturnRows(existsRow(true))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE articles SET "votes" = "votes" + $1 WHERE article_id = $2`)).
		WithArgs(int64(6), int64(13)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.article_id = $1")).
		WithArgs(int64(13)).
		WillReturnRows(articleRow(after))
	mock.ExpectCommit()

	got, err := pg.NewArticleRepo(db).Update(context.Background(), 13, repository.ArticlePatch{IncVotes: i64Ptr(6)})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if got.Votes != 6 {
		t.Errorf("votes = %d, want 6", got.Votes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Update_EmptyPatchReturnsRow(t *testing.T) {
	db, mock := newMock(t)
	want := sampleArticle()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(13)).WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.article_id = $1")).
		WithArgs(int64(13)).
		WillReturnRows(articleRow(want))
	mock.ExpectCommit()

	got, err := pg.NewArticleRepo(db).Update(context.Background(), 13, repository.ArticlePatch{})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Update_UnknownTopic(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(13)).WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(existsTopic)).WithArgs("dogs").WillReturnRows(existsRow(false))
	mock.ExpectRollback()

	_, err := pg.NewArticleRepo(db).Update(context.Background(), 13, repository.ArticlePatch{
		Title: strPtr("renamed"), Topic: strPtr("dogs"),
	})
	assertKind(t, err, apperror.KindNotFound, "slug 'dogs' was not found in topics")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Update_MissingArticle(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(9999)).WillReturnRows(existsRow(false))
	mock.ExpectRollback()

	_, err := pg.NewArticleRepo(db).Update(context.Background(), 9999, repository.ArticlePatch{IncVotes: i64Ptr(1)})
	assertKind(t, err, apperror.KindNotFound, "article_id '9999' was not found in articles")
}

/* ─────────────────────────── 5. Delete ─────────────────────────── */

func TestArticleRepo_Delete(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(1)).WillReturnRows(existsRow(true))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE article_id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := pg.NewArticleRepo(db).Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Delete_NotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(404)).WillReturnRows(existsRow(false))
	mock.ExpectRollback()

	err := pg.NewArticleRepo(db).Delete(context.Background(), 404)
	assertKind(t, err, apperror.KindNotFound, "article_id '404' was not found in articles")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
