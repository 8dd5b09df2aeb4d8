package util

import (
	"time"
)

// AddTimeToDate pins a wall-clock hour and minute onto the civil date of date, in date's location.
func AddTimeToDate(date time.Time, hour int, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
