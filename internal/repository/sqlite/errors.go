package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"wefixit/internal/apperr"
)

// wrap translates a driver error for a single-row lookup.
func wrap(op, resource string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(resource, id)
	}
	return apperr.Persistence(op, err)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// limitArg maps a non-positive limit to SQLite's "no limit".
func limitArg(n int) int {
	if n <= 0 {
		return -1
	}
	return n
}

func now() time.Time {
	return time.Now().UTC()
}

// Lists are kept as JSON text columns.
func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

func decodeList(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkAffected(res sql.Result, op, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Persistence(op, err)
	}
	if n == 0 {
		return apperr.NotFound(resource, id)
	}
	return nil
}
