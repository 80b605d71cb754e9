package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2026-01-05 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-01-05T14:00:00+08:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("05/01/2026")
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2026-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseMonth("2026-13")
	assert.Error(t, err)
}
