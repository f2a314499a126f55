package util

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT("admin", "secret", time.Hour)
	require.NoError(t, err)

	sub, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
}

func TestJWT_Rejects(t *testing.T) {
	token, err := GenerateJWT("admin", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT("admin", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.Error(t, err)

	noSubject, err := GenerateJWT("", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(noSubject, "secret")
	assert.Error(t, err)

	_, err = ParseJWT("garbage", "secret")
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"Bearer abc":       "abc",
		"bearer abc":       "abc",
		"Basic abc":        "",
		"Bearer":           "",
		"Bearer abc extra": "",
	}
	for header, want := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		assert.Equal(t, want, ExtractToken(r), header)
	}
}
