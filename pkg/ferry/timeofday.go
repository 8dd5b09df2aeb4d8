package ferry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/travigo/islandferry/pkg/util"
)

// TimeOfDay is a wall-clock "HH:MM" departure time with no zone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(value string) (TimeOfDay, error) {
	hourString, minuteString, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found || len(hourString) < 1 || len(hourString) > 2 || len(minuteString) != 2 {
		return TimeOfDay{}, fmt.Errorf("time %q is not in HH:MM format", value)
	}

	hour, err := parseDigits(hourString)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("time %q has an invalid hour", value)
	}
	minute, err := parseDigits(minuteString)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("time %q has an invalid minute", value)
	}

	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time %q is out of range", value)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func MustParseTimeOfDay(value string) TimeOfDay {
	timeOfDay, err := ParseTimeOfDay(value)
	if err != nil {
		panic(err)
	}

	return timeOfDay
}

func parseDigits(value string) (int, error) {
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not numeric", value)
		}
	}

	return strconv.Atoi(value)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this wall-clock time on the civil date of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return util.AddTimeToDate(date, t.Hour, t.Minute)
}

// AmPm formats the time the way the printed timetable does, e.g. "03:05 PM".
func (t TimeOfDay) AmPm() string {
	return time.Date(2000, time.January, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format("03:04 PM")
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}

	parsed, err := ParseTimeOfDay(value)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// FormatClock is the format of the live clock shown above the route selector.
func FormatClock(now time.Time) string {
	return now.Format("03:04:05 PM")
}
