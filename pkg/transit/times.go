package transit

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	dateRegex      = regexp.MustCompile(`^\d{8}$`)
	timeOfDayRegex = regexp.MustCompile(`^(\d{1,2}):([0-5]\d)(?::([0-5]\d))?$`)
)

// ValidDate reports whether value is an 8 digit YYYYMMDD service date.
func ValidDate(value string) bool {
	return dateRegex.MatchString(value)
}

// ParseDate converts a YYYYMMDD service date into a local time.Time.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("20060102", value, time.Local)
}

// ParseTimeOfDay converts HH:MM or HH:MM:SS into seconds since midnight.
// Hours above 23 are accepted for trips running past midnight.
func ParseTimeOfDay(value string) (int, error) {
	matches := timeOfDayRegex.FindStringSubmatch(value)
	if matches == nil {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	seconds := 0
	if matches[3] != "" {
		seconds, _ = strconv.Atoi(matches[3])
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// FormatTimeOfDay renders seconds since midnight as HH:MM:SS. Values past
// 86399 keep counting hours upwards (25:10:00) rather than wrapping.
func FormatTimeOfDay(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}
