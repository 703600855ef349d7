package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaginationDefaults(t *testing.T) {
	offset, limit, err := parsePagination("", "", 50)
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 50, limit)

	offset, limit, err = parsePagination("10", "5", 50)
	require.NoError(t, err)
	assert.Equal(t, 10, offset)
	assert.Equal(t, 5, limit)
}

func TestParsePaginationRejectsBadValues(t *testing.T) {
	_, _, err := parsePagination("-1", "", 50)
	assert.Error(t, err)

	_, _, err = parsePagination("", "0", 50)
	assert.Error(t, err)

	_, _, err = parsePagination("x", "", 50)
	assert.Error(t, err)

	_, _, err = parsePagination("", "y", 50)
	assert.Error(t, err)
}

func TestParseCSV(t *testing.T) {
	assert.Nil(t, parseCSV(""))
	assert.Equal(t, []string{"customer", "region"}, parseCSV("customer, region,"))
}

func TestParseOptionalTime(t *testing.T) {
	got, err := parseOptionalTime("", false)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseOptionalTime("2024-03-01T10:30:00Z", false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.Hour())

	// Date-only expands to the start or end of the day.
	got, err = parseOptionalTime("2024-03-01", false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseOptionalTime("2024-03-01", true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 23, got.Hour())

	_, err = parseOptionalTime("bogus", false)
	assert.Error(t, err)
}
