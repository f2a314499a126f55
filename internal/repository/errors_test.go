package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"wefixit/internal/apperr"
)

func TestWrap(t *testing.T) {
	err := wrap("get project", "project", int64(7), pgx.ErrNoRows)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "project 7 not found", err.Error())

	boom := errors.New("conn closed")
	err = wrap("get project", "project", int64(7), boom)
	var pe *apperr.PersistenceError
	assert.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, boom)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(nil))
}

func TestLimitArg(t *testing.T) {
	assert.Nil(t, limitArg(0))
	assert.Nil(t, limitArg(-3))
	if assert.NotNil(t, limitArg(20)) {
		assert.Equal(t, 20, *limitArg(20))
	}
}

func TestCheckAffected(t *testing.T) {
	assert.True(t, apperr.IsNotFound(checkAffected(pgconn.NewCommandTag("DELETE 0"), "review", 3)))
	assert.NoError(t, checkAffected(pgconn.NewCommandTag("DELETE 1"), "review", 3))
}
