package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompactTimestamp(t *testing.T) {
	got, err := ParseCompactTimestamp("20260226T075324")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 26, 7, 53, 24, 0, time.UTC), got)

	got, err = ParseCompactTimestamp("20240928T0924")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 24, got.Minute())

	_, err = ParseCompactTimestamp("N/A")
	assert.Error(t, err)
}

func TestFormatCompactTimestamp(t *testing.T) {
	assert.Equal(t, "2024-09-28 09:24:00", FormatCompactTimestamp("20240928T092400"))
	assert.Equal(t, "N/A", FormatCompactTimestamp("N/A"))
	assert.Equal(t, "", FormatCompactTimestamp(""))
}
