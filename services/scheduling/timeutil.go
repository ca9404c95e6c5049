package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToMinutes converts an "HH:MM" time-of-day to minutes since midnight.
func ToMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", t)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", t)
	}
	return h*60 + m, nil
}

// FormatMinutes renders minutes since midnight as a zero-padded "HH:MM".
func FormatMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// CanonicalDay normalizes a weekday name to its calendar spelling
// ("monday" -> "Monday"). Returns false for anything that is not one of the
// seven weekday names.
func CanonicalDay(day string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(day))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == lower {
			return d.String(), true
		}
	}
	return "", false
}

// bookingTimeLayouts are the accepted ISO date-time shapes for booking
// requests; zone-less layouts are interpreted in server-local time, matching
// the rest of the date math here.
var bookingTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseBookingTime parses a requested appointment date-time.
func ParseBookingTime(value string) (time.Time, error) {
	for _, layout := range bookingTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", value)
}

// ParseDate parses a "YYYY-MM-DD" calendar date in server-local time.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// dayBounds returns the [midnight, next midnight) window of a date.
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

// atMinutes anchors minutes-since-midnight onto a concrete date.
func atMinutes(date time.Time, min int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), min/60, min%60, 0, 0, date.Location())
}

// minutesOfDay returns the minutes since midnight of a date-time.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
