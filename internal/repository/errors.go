package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"wefixit/internal/apperr"
)

const uniqueViolation = "23505"

func wrap(op, resource string, id any, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource, id)
	}
	return apperr.Persistence(op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// limitArg maps a non-positive limit to NULL, which Postgres reads as LIMIT ALL.
func limitArg(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}

func checkAffected(tag pgconn.CommandTag, resource string, id any) error {
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource, id)
	}
	return nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
