package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wefixit/pkg/config"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT * FROM projects"))
	assert.Equal(t, "unknown", operation("   "))
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable",
		DSN(config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5432, Name: "d"}))
	assert.Equal(t, "postgres://x", DSN(config.DBConfig{URL: "postgres://x", Host: "ignored"}))
}
