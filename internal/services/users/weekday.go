package users

import (
	"strconv"
	"strings"
	"time"
)

var dayNames = [...]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// DayName returns the lowercase English name of d.
func DayName(d time.Weekday) string {
	return dayNames[d]
}

// ParseWeekNumbers parses a comma separated list of weekday numbers
// (0=Sunday..6=Saturday). One bad entry rejects the whole list. Duplicates
// collapse and the original order is kept.
func ParseWeekNumbers(raw string) ([]time.Weekday, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrWeekNumberMissing
	}

	parts := strings.Split(raw, ",")
	days := make([]time.Weekday, 0, len(parts))
	seen := make(map[time.Weekday]bool, len(parts))

	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < int(time.Sunday) || n > int(time.Saturday) {
			return nil, ErrWeekNumberInvalid
		}
		d := time.Weekday(n)
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}

	return days, nil
}
