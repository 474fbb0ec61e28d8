package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nc-news/internal/apperror"
	"nc-news/internal/pkg/query"
)

func TestCheckAllConcurrently_EarliestFailureWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	stmt := func(table, column string) string {
		return regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "` + table + `" WHERE "` + column + `" = $1)`)
	}
	mock.ExpectQuery(stmt("topics", "slug")).WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(stmt("users", "username")).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = checkAllConcurrently(context.Background(), db, []query.ExistenceCheck{
		{Table: query.TableTopics, Column: "slug", Value: "nope"},
		{Table: query.TableUsers, Column: "username", Value: "ghost"},
	})
	require.Error(t, err)
	assert.Equal(t, "slug 'nope' was not found in topics", apperror.Normalize(err).Details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAll_StopsAtFirstFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = checkAll(context.Background(), db, []query.ExistenceCheck{
		{Table: query.TableUsers, Column: "username", Value: "ghost"},
		{Table: query.TableTopics, Column: "slug", Value: "cats"},
	})
	assert.True(t, apperror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists_WrapsDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	mock.ExpectQuery("SELECT EXISTS").WillReturnError(boom)

	err = Exists(context.Background(), db, query.TableArticles, "article_id", int64(1))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Exists articles.article_id")
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("stop")
	err = withTx(context.Background(), db, func(_ *sql.Tx) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err = withTx(context.Background(), db, func(_ *sql.Tx) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Commit:")
}
