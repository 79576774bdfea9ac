package activity

import (
	"fmt"
	"regexp"
	"time"
)

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DayWindow is one calendar day in UTC, from 00:00:00 to 23:59:59.
type DayWindow struct {
	Date  string
	Since time.Time
	Until time.Time
}

// ParseDay validates a YYYY-MM-DD date and returns its UTC window. Dates
// with the right shape but no calendar meaning (2024-02-30) are rejected.
func ParseDay(value string) (DayWindow, error) {
	if !dayPattern.MatchString(value) {
		return DayWindow{}, ErrInvalidDate(value, fmt.Errorf("malformed date"))
	}

	day, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return DayWindow{}, ErrInvalidDate(value, err)
	}

	return DayWindow{
		Date:  value,
		Since: day,
		Until: day.Add(24*time.Hour - time.Second),
	}, nil
}
