// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"nc-news/internal/apperror"
	"nc-news/internal/pkg/query"
)

// Querier is the statement primitive shared by *sql.DB, *sql.Tx and
// circuitbreaker.DBCircuitBreaker.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DB is a Querier that can also start transactions.
type DB interface {
	Querier
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// withTx runs fn in a transaction, committing when it returns nil.
func withTx(ctx context.Context, db DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("BeginTx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("Commit: %w", err)
	}
	return nil
}

// nullable scans a text column that allows NULL into dst. NULL reads as "".
func nullable(dst *string) sql.Scanner { return nullString{dst} }

type nullString struct{ dst *string }

func (n nullString) Scan(src any) error {
	var ns sql.NullString
	if err := ns.Scan(src); err != nil {
		return err
	}
	*n.dst = ns.String
	return nil
}

// Exists fails with NotFound unless table has a row whose column equals value.
// table and column come from constants; value is always bound as $1.
func Exists(ctx context.Context, q Querier, table query.Table, column string, value any) error {
	stmt := "SELECT EXISTS (SELECT 1 FROM " + table.Ident() + " WHERE " + query.Col(column).Ident() + " = $1)"

	var found bool
	if err := q.QueryRowContext(ctx, stmt, value).Scan(&found); err != nil {
		return fmt.Errorf("Exists %s.%s: %w", table, column, err)
	}
	if !found {
		return apperror.NotFoundIn(string(table), column, value)
	}
	return nil
}

// checkAll runs the checks one after another on q. Use it inside transactions,
// where a connection cannot serve two statements at once.
func checkAll(ctx context.Context, q Querier, checks []query.ExistenceCheck) error {
	for _, c := range checks {
		if err := Exists(ctx, q, c.Table, c.Column, c.Value); err != nil {
			return err
		}
	}
	return nil
}

// checkAllConcurrently runs the checks in parallel on the pool. When several
// fail, the error of the earliest check in the slice wins.
func checkAllConcurrently(ctx context.Context, q Querier, checks []query.ExistenceCheck) error {
	if len(checks) < 2 {
		return checkAll(ctx, q, checks)
	}

	errs := make([]error, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			errs[i] = Exists(ctx, q, c.Table, c.Column, c.Value)
			return nil
		})
	}
	_ = g.Wait()
	return firstError(errs)
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// noRowsAsNotFound turns sql.ErrNoRows into the NotFound of table.column=value.
func noRowsAsNotFound(err error, table query.Table, column string, value any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFoundIn(string(table), column, value)
	}
	return err
}
