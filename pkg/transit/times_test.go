package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("20260828"))
	assert.True(t, ValidDate("00000000"))

	assert.False(t, ValidDate("2026-08-28"))
	assert.False(t, ValidDate("2026828"))
	assert.False(t, ValidDate("202608280"))
	assert.False(t, ValidDate("tomorrow"))
	assert.False(t, ValidDate(""))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("20260828")
	require.NoError(t, err)

	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, 8, int(date.Month()))
	assert.Equal(t, 28, date.Day())

	_, err = ParseDate("20261345")
	assert.Error(t, err)
}

func TestParseTimeOfDay(t *testing.T) {
	testCases := []struct {
		value   string
		seconds int
		invalid bool
	}{
		{value: "00:00:00", seconds: 0},
		{value: "09:30", seconds: 9*3600 + 30*60},
		{value: "9:30", seconds: 9*3600 + 30*60},
		{value: "17:45:30", seconds: 17*3600 + 45*60 + 30},
		// Past-midnight trips keep hours above 23
		{value: "25:10:00", seconds: 25*3600 + 10*60},
		{value: "24:00:00", seconds: 86400},

		{value: "09:75", invalid: true},
		{value: "09:30:99", invalid: true},
		{value: "0930", invalid: true},
		{value: "half nine", invalid: true},
		{value: "", invalid: true},
	}

	for _, testCase := range testCases {
		seconds, err := ParseTimeOfDay(testCase.value)

		if testCase.invalid {
			assert.Error(t, err, testCase.value)
		} else {
			require.NoError(t, err, testCase.value)
			assert.Equal(t, testCase.seconds, seconds, testCase.value)
		}
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatTimeOfDay(0))
	assert.Equal(t, "09:30:00", FormatTimeOfDay(9*3600+30*60))
	assert.Equal(t, "17:45:30", FormatTimeOfDay(17*3600+45*60+30))

	// Never wraps back to 01:10:00
	assert.Equal(t, "25:10:00", FormatTimeOfDay(25*3600+10*60))
}

func TestParseFormatRoundTripPastMidnight(t *testing.T) {
	seconds, err := ParseTimeOfDay("26:05:15")
	require.NoError(t, err)
	assert.Equal(t, "26:05:15", FormatTimeOfDay(seconds))
}
