package apperror

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// storageError is the driver-neutral view of a PostgreSQL error.
type storageError struct {
	code    string
	message string
	detail  string
}

// Normalize maps any error onto the closed taxonomy. Already classified errors
// are returned unchanged; PostgreSQL errors from pgx or lib/pq are classified
// by SQLSTATE; everything else becomes KindInternal.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Kind: KindNotFound, Details: "resource was not found", Err: err}
	}

	if se, ok := asStorageError(err); ok {
		if mapped := classify(se, err); mapped != nil {
			return mapped
		}
	}

	return Internal(err)
}

func asStorageError(err error) (storageError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return storageError{code: pgErr.Code, message: pgErr.Message, detail: pgErr.Detail}, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return storageError{code: string(pqErr.Code), message: pqErr.Message, detail: pqErr.Detail}, true
	}
	return storageError{}, false
}

// classify returns nil for SQLSTATEs that carry no client-facing meaning.
func classify(se storageError, cause error) *Error {
	switch se.code {
	case pgerrcode.InvalidTextRepresentation,
		pgerrcode.NumericValueOutOfRange,
		pgerrcode.StringDataRightTruncationDataException,
		pgerrcode.CheckViolation,
		pgerrcode.UndefinedColumn:
		return &Error{Kind: KindBadRequest, Details: se.message, Err: cause}
	case pgerrcode.NotNullViolation:
		return &Error{Kind: KindBadRequest, Details: "Missing required field: " + se.columnFromMessage(), Err: cause}
	case pgerrcode.UniqueViolation:
		return &Error{Kind: KindBadRequest, Details: se.detailOr("resource already exists"), Err: cause}
	case pgerrcode.ForeignKeyViolation:
		return &Error{Kind: KindNotFound, Details: se.detailOr("referenced resource was not found"), Err: cause}
	}
	return nil
}

func (se storageError) detailOr(fallback string) string {
	if se.detail != "" {
		return se.detail
	}
	return fallback
}

// columnFromMessage extracts the column from `null value in column "x" ...`.
func (se storageError) columnFromMessage() string {
	const marker = `column "`
	i := strings.Index(se.message, marker)
	if i < 0 {
		return "unknown"
	}
	rest := se.message[i+len(marker):]
	if j := strings.IndexByte(rest, '"'); j >= 0 {
		return rest[:j]
	}
	return "unknown"
}
