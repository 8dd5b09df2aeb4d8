package ferry

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a civil calendar date with no zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// OpenEndedDate stands in for the end of a schedule that has no end date.
var OpenEndedDate = Date{Year: 9999, Month: time.December, Day: 31}

func NewDate(year int, month time.Month, day int) (Date, error) {
	date := Date{Year: year, Month: month, Day: day}

	normalised := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if normalised.Year() != year || normalised.Month() != month || normalised.Day() != day {
		return Date{}, fmt.Errorf("%04d-%02d-%02d is not a valid date", year, int(month), day)
	}

	return date, nil
}

func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("date %q is not in YYYY-MM-DD format", value)
	}

	return DateOf(parsed), nil
}

// DateOf returns the civil date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmp.Compare(d.Year, other.Year)
	case d.Month != other.Month:
		return cmp.Compare(int(d.Month), int(other.Month))
	default:
		return cmp.Compare(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func (d Date) AddDays(days int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+days, 0, 0, 0, 0, time.UTC))
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts either an ISO "YYYY-MM-DD" string or a {"year","month","day"} object
// whose members may be numbers or numeric strings.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}

		parsed, err := ParseDate(value)
		if err != nil {
			return err
		}

		*d = parsed
		return nil
	}

	var parts struct {
		Year  flexibleInt `json:"year"`
		Month flexibleInt `json:"month"`
		Day   flexibleInt `json:"day"`
	}
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("date must be a string or an object: %w", err)
	}
	if !parts.Year.set || !parts.Month.set || !parts.Day.set {
		return fmt.Errorf("date object %s must have year, month and day", string(data))
	}

	parsed, err := NewDate(parts.Year.value, time.Month(parts.Month.value), parts.Day.value)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// isEmptyDate reports whether raw JSON represents a missing date: absent, null or {}.
func isEmptyDate(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &object); err == nil && len(object) == 0 {
		return true
	}

	return false
}

type flexibleInt struct {
	value int
	set   bool
}

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(bytes.TrimSpace(data)), `"`)

	value, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("%s is not an integer", string(data))
	}

	f.value = value
	f.set = true
	return nil
}
