package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"nc-news/internal/apperror"
	"nc-news/internal/domain/entity"
	pg "nc-news/internal/infra/adapter/persistence/postgres"
	"nc-news/internal/repository"
)

var commentCols = []string{"comment_id", "article_id", "author", "body", "votes", "created_at"}

func commentRow(c *entity.Comment) *sqlmock.Rows {
	return sqlmock.NewRows(commentCols).AddRow(c.ID, c.ArticleID, c.Author, c.Body, c.Votes, c.CreatedAt)
}

func sampleComment() *entity.Comment {
	return &entity.Comment{
		ID: 2, ArticleID: 1, Author: "butter_bridge",
		Body: "The beautiful thing about treasure is that it exists.", Votes: 14, CreatedAt: created,
	}
}

/* ─────────────────────────── 1. ListByArticle ─────────────────────────── */

func TestCommentRepo_ListByArticle(t *testing.T) {
	db, mock := newMock(t)
	c := sampleComment()

	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(1)).WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM comments WHERE article_id = $1 ORDER BY "created_at" DESC, "comment_id" DESC LIMIT $2 OFFSET $3`)).
		WithArgs(int64(1), int64(10), int64(0)).
		WillReturnRows(commentRow(c))

	got, err := pg.NewCommentRepo(db).ListByArticle(context.Background(), repository.CommentListParams{
		ArticleID: 1, SortBy: "created_at", Order: "desc", Limit: "10", Page: "1",
	})
	if err != nil {
		t.Fatalf("ListByArticle err=%v", err)
	}
	if diff := cmp.Diff([]*entity.Comment{c}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCommentRepo_ListByArticle_NoComments(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(2)).WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE article_id = $1")).
		WillReturnRows(sqlmock.NewRows(commentCols))

	got, err := pg.NewCommentRepo(db).ListByArticle(context.Background(), repository.CommentListParams{
		ArticleID: 2, SortBy: "created_at", Order: "desc", Limit: "10", Page: "1",
	})
	if err != nil {
		t.Fatalf("ListByArticle err=%v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestCommentRepo_ListByArticle_MissingArticle(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(999)).WillReturnRows(existsRow(false))

	_, err := pg.NewCommentRepo(db).ListByArticle(context.Background(), repository.CommentListParams{
		ArticleID: 999, SortBy: "created_at", Order: "desc", Limit: "10", Page: "1",
	})
	assertKind(t, err, apperror.KindNotFound, "article_id '999' was not found in articles")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCommentRepo_ListByArticle_InvalidSortBeforeLookup(t *testing.T) {
	db, mock := newMock(t)

	_, err := pg.NewCommentRepo(db).ListByArticle(context.Background(), repository.CommentListParams{
		ArticleID: 999, SortBy: "title", Order: "desc", Limit: "10", Page: "1",
	})
	assertKind(t, err, apperror.KindBadRequest, "Invalid sort_by query")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 2. Get ─────────────────────────── */

func TestCommentRepo_Get_NotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE comment_id = $1")).
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows(commentCols))

	_, err := pg.NewCommentRepo(db).Get(context.Background(), 77)
	assertKind(t, err, apperror.KindNotFound, "comment_id '77' was not found in comments")
}

/* ─────────────────────────── 3. Create ─────────────────────────── */

func TestCommentRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	want := &entity.Comment{ID: 19, ArticleID: 1, Author: "lurker", Body: "hello", CreatedAt: created}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(1)).WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(existsUser)).WithArgs("lurker").WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments (article_id, author, body)")).
		WithArgs(int64(1), "lurker", "hello").
		WillReturnRows(commentRow(want))
	mock.ExpectCommit()

	got, err := pg.NewCommentRepo(db).Create(context.Background(), &entity.Comment{
		ArticleID: 1, Author: "lurker", Body: "hello",
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCommentRepo_Create_MissingArticleInsertsNothing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(9999)).WillReturnRows(existsRow(false))
	mock.ExpectRollback()

	_, err := pg.NewCommentRepo(db).Create(context.Background(), &entity.Comment{
		ArticleID: 9999, Author: "lurker", Body: "hello",
	})
	assertKind(t, err, apperror.KindNotFound, "article_id '9999' was not found in articles")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCommentRepo_Create_UnknownAuthor(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsArticle)).WithArgs(int64(1)).WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(existsUser)).WithArgs("ghost").WillReturnRows(existsRow(false))
	mock.ExpectRollback()

	_, err := pg.NewCommentRepo(db).Create(context.Background(), &entity.Comment{
		ArticleID: 1, Author: "ghost", Body: "boo",
	})
	assertKind(t, err, apperror.KindNotFound, "username 'ghost' was not found in users")
}

/* ─────────────────────────── 4. Update ─────────────────────────── */

func TestCommentRepo_Update_IncVotes(t *testing.T) {
	db, mock := newMock(t)
	after := sampleComment()
	after.Votes = 4

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsComment)).WithArgs(int64(2)).WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE comments SET "votes" = "votes" + $1 WHERE comment_id = $2 RETURNING`)).
		WithArgs(int64(-10), int64(2)).
		WillReturnRows(commentRow(after))
	mock.ExpectCommit()

	got, err := pg.NewCommentRepo(db).Update(context.Background(), 2, repository.CommentPatch{IncVotes: i64Ptr(-10)})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if got.Votes != 4 {
		t.Errorf("votes = %d, want 4", got.Votes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCommentRepo_Update_EmptyPatch(t *testing.T) {
	db, mock := newMock(t)
	c := sampleComment()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsComment)).WithArgs(int64(2)).WillReturnRows(existsRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE comment_id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(commentRow(c))
	mock.ExpectCommit()

	got, err := pg.NewCommentRepo(db).Update(context.Background(), 2, repository.CommentPatch{})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

/* ─────────────────────────── 5. Delete ─────────────────────────── */

func TestCommentRepo_Delete(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsComment)).WithArgs(int64(1)).WillReturnRows(existsRow(true))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE comment_id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := pg.NewCommentRepo(db).Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCommentRepo_Delete_NotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(existsComment)).WithArgs(int64(1000)).WillReturnRows(existsRow(false))
	mock.ExpectRollback()

	err := pg.NewCommentRepo(db).Delete(context.Background(), 1000)
	assertKind(t, err, apperror.KindNotFound, "comment_id '1000' was not found in comments")
}
