package ferry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Document is the published timetable file.
type Document struct {
	Schedules []*Schedule `json:"schedules"`
}

// Schedule is one date-ranged timetable. A nil End means the schedule runs indefinitely.
type Schedule struct {
	Name      string                      `json:"name,omitempty"`
	Start     Date                        `json:"start"`
	End       *Date                       `json:"end"`
	Locations map[string]LocationSchedule `json:"locations"`
}

// LocationSchedule holds the ordered departure times for each direction at one location.
type LocationSchedule map[Direction][]TimeOfDay

func DecodeDocument(reader io.Reader) (*Document, error) {
	var document Document

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("decode schedule document: %w", err)
	}

	if err := document.Validate(); err != nil {
		return nil, err
	}

	return &document, nil
}

func ParseDocument(data []byte) (*Document, error) {
	return DecodeDocument(bytes.NewReader(data))
}

// Encode writes the document in the layout the generator publishes.
func (d *Document) Encode(writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")

	return encoder.Encode(d)
}

func (d *Document) Validate() error {
	for i, schedule := range d.Schedules {
		if schedule == nil {
			return fmt.Errorf("schedule %d is null", i)
		}

		if schedule.End != nil && schedule.End.Before(schedule.Start) {
			return fmt.Errorf("schedule %d (%s) ends %s before it starts %s", i, schedule.Name, schedule.End, schedule.Start)
		}
	}

	return nil
}

// EffectiveEnd returns the end date, substituting OpenEndedDate for schedules without one.
func (s *Schedule) EffectiveEnd() Date {
	if s.End == nil {
		return OpenEndedDate
	}

	return *s.End
}

func (s *Schedule) Contains(date Date) bool {
	return !s.Start.After(date) && !s.EffectiveEnd().Before(date)
}

func (s *Schedule) Times(route Route) ([]TimeOfDay, bool) {
	location, ok := s.Locations[route.Location]
	if !ok {
		return nil, false
	}

	times, ok := location[route.Direction]
	return times, ok
}

// Routes lists every location/direction pair the schedule covers, sorted.
func (s *Schedule) Routes() []Route {
	var routes []Route

	for locationName, location := range s.Locations {
		for direction := range location {
			routes = append(routes, Route{Location: locationName, Direction: direction})
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Less(routes[j])
	})

	return routes
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string                            `json:"name"`
		Start     json.RawMessage                   `json:"start"`
		End       json.RawMessage                   `json:"end"`
		Locations map[string]map[string][]TimeOfDay `json:"locations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if isEmptyDate(raw.Start) {
		return fmt.Errorf("schedule %q has no start date", raw.Name)
	}

	var start Date
	if err := json.Unmarshal(raw.Start, &start); err != nil {
		return fmt.Errorf("schedule %q start: %w", raw.Name, err)
	}

	var end *Date
	if !isEmptyDate(raw.End) {
		end = &Date{}
		if err := json.Unmarshal(raw.End, end); err != nil {
			return fmt.Errorf("schedule %q end: %w", raw.Name, err)
		}
	}

	locations := make(map[string]LocationSchedule, len(raw.Locations))
	for locationName, directions := range raw.Locations {
		location := LocationSchedule{}

		for key, times := range directions {
			direction, err := ParseDirection(key)
			if err != nil {
				return fmt.Errorf("schedule %q location %q: %w", raw.Name, locationName, err)
			}

			if _, exists := location[direction]; exists {
				return fmt.Errorf("schedule %q location %q: direction %q given more than once", raw.Name, locationName, direction)
			}

			location[direction] = times
		}

		locations[locationName] = location
	}

	*s = Schedule{
		Name:      raw.Name,
		Start:     start,
		End:       end,
		Locations: locations,
	}

	return nil
}
