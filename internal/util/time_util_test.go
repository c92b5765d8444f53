package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-09")
	require.NoError(t, err)
	require.Equal(t, NewDate(2024, 1, 9), d.UTC())

	_, err = ParseDate("01/09/2024")
	require.Error(t, err)
}

func TestDateLte(t *testing.T) {
	require.True(t, DateLte(
		NewDate(2024, 1, 9),
		NewDate(2024, 1, 10),
	))
	require.True(t, DateLte(
		NewDate(2024, 1, 9),
		NewDate(2024, 1, 9),
	))
	require.False(t, DateLte(
		NewDate(2024, 1, 10),
		NewDate(2024, 1, 9),
	))

	// same calendar date with a time component still counts as lte
	require.True(t, DateLte(
		time.Date(2024, 1, 9, 15, 0, 0, 0, time.UTC),
		NewDate(2024, 1, 9),
	))
}
