package ferry

import (
	"time"
)

// DefaultHighlightWindow is how far ahead a departure is flagged as imminent.
const DefaultHighlightWindow = 60 * time.Minute

// Classifier splits departure times around the current wall-clock time in a fixed civil
// timezone and flags the ones leaving soon.
type Classifier struct {
	Location *time.Location
	Window   time.Duration
}

func NewClassifier(location *time.Location, window time.Duration) *Classifier {
	if location == nil {
		location = time.Local
	}
	if window <= 0 {
		window = DefaultHighlightWindow
	}

	return &Classifier{
		Location: location,
		Window:   window,
	}
}

// At pins t onto today's civil date as seen from now in the classifier's timezone.
func (c *Classifier) At(t TimeOfDay, now time.Time) time.Time {
	return t.On(now.In(c.Location))
}

// IsFuture reports whether t is strictly after now. A departure at exactly now has left.
func (c *Classifier) IsFuture(t TimeOfDay, now time.Time) bool {
	return c.At(t, now).After(now)
}

// Split partitions times into future and past, keeping the input order within each part.
func (c *Classifier) Split(times []TimeOfDay, now time.Time) (future []TimeOfDay, past []TimeOfDay) {
	future = []TimeOfDay{}
	past = []TimeOfDay{}

	for _, t := range times {
		if c.IsFuture(t, now) {
			future = append(future, t)
		} else {
			past = append(past, t)
		}
	}

	return future, past
}

// MinutesUntil is the whole minutes from now until t, truncated toward zero.
func (c *Classifier) MinutesUntil(t TimeOfDay, now time.Time) int {
	return int(c.At(t, now).Sub(now) / time.Minute)
}

// WithinWindow reports whether t is still to come and no more than the highlight window away,
// measured in whole minutes.
func (c *Classifier) WithinWindow(t TimeOfDay, now time.Time) bool {
	if !c.IsFuture(t, now) {
		return false
	}

	return time.Duration(c.MinutesUntil(t, now))*time.Minute <= c.Window
}

// SplitTimes classifies times against now in now's own location.
func SplitTimes(times []TimeOfDay, now time.Time) ([]TimeOfDay, []TimeOfDay) {
	return NewClassifier(now.Location(), DefaultHighlightWindow).Split(times, now)
}

// SplitTimeStrings is SplitTimes for raw "HH:MM" strings, returning the input strings unchanged.
func SplitTimeStrings(times []string, now time.Time) (future []string, past []string, err error) {
	classifier := NewClassifier(now.Location(), DefaultHighlightWindow)

	future = []string{}
	past = []string{}

	for _, value := range times {
		t, err := ParseTimeOfDay(value)
		if err != nil {
			return nil, nil, err
		}

		if classifier.IsFuture(t, now) {
			future = append(future, value)
		} else {
			past = append(past, value)
		}
	}

	return future, past, nil
}

// IsWithinNextHour is the default highlight predicate against now's own location.
func IsWithinNextHour(t TimeOfDay, now time.Time) bool {
	return NewClassifier(now.Location(), DefaultHighlightWindow).WithinWindow(t, now)
}
