package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/islandferry/pkg/ferry"
	"golang.org/x/exp/slices"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Seasons are the accordion sections of the published page, each holding at most one schedule.
var Seasons = []string{"spring", "summer", "fall", "winter"}

const maxSeasonWorkers = 4

// Parse turns the schedule page into a timetable document ordered by start date. Every
// schedule but the last ends the day before its successor starts.
func Parse(root *html.Node) (*ferry.Document, error) {
	p := pool.NewWithResults[seasonSchedule]().WithErrors().WithMaxGoroutines(maxSeasonWorkers)

	for index, season := range Seasons {
		p.Go(func() (seasonSchedule, error) {
			result := seasonSchedule{index: index}

			section := findByID(root, fmt.Sprintf("accordion-%s-schedule", season))
			if section == nil {
				log.Debug().Str("season", season).Msg("Season not on page")
				return result, nil
			}

			schedule, err := parseSeason(section)
			if err != nil {
				return result, fmt.Errorf("%s schedule: %w", season, err)
			}
			if schedule == nil {
				log.Debug().Str("season", season).Msg("Season has no published schedule")
			}

			result.schedule = schedule
			return result, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	// the pool hands results back in completion order
	slices.SortFunc(results, func(a seasonSchedule, b seasonSchedule) int {
		return a.index - b.index
	})

	schedules := []*ferry.Schedule{}
	for _, result := range results {
		if result.schedule != nil {
			schedules = append(schedules, result.schedule)
		}
	}

	populateEndDates(schedules)

	return &ferry.Document{Schedules: schedules}, nil
}

// seasonSchedule is a parsed season tagged with its position in Seasons.
type seasonSchedule struct {
	index    int
	schedule *ferry.Schedule
}

// parseSeason reads one season section. It returns nil when the caption announces no start date.
func parseSeason(section *html.Node) (*ferry.Schedule, error) {
	tables := findAll(section, isScheduleTable)
	if len(tables) == 0 {
		return nil, nil
	}

	caption := findFirst(tables[0], isElement(atom.Caption))
	if caption == nil {
		return nil, nil
	}

	name, start, ok, err := parseCaption(text(caption))
	if err != nil || !ok {
		return nil, err
	}

	schedule := &ferry.Schedule{
		Name:      name,
		Start:     start,
		Locations: map[string]ferry.LocationSchedule{},
	}

	for _, table := range tables {
		location, times, err := parseLocationTable(table)
		if err != nil {
			return nil, err
		}

		schedule.Locations[location] = times
	}

	return schedule, nil
}

// parseCaption reads captions of the form "The 2024 spring schedule starts April 15." or
// "The winter schedule started on October 15, 2024.". ok is false for any other caption.
func parseCaption(caption string) (name string, start ferry.Date, ok bool, err error) {
	words := strings.Fields(caption)

	switch {
	case strings.Contains(caption, "starts"):
		if len(words) < 4 {
			return "", ferry.Date{}, false, fmt.Errorf("caption %q is too short", caption)
		}

		year := words[1]
		name = fmt.Sprintf("%s %s Schedule", capitalize(words[2]), year)
		value := fmt.Sprintf("%s %s %s", words[len(words)-2], strings.TrimSuffix(words[len(words)-1], "."), year)

		parsed, err := time.Parse("January 2 2006", value)
		if err != nil {
			return "", ferry.Date{}, false, fmt.Errorf("caption %q: %w", caption, err)
		}

		return name, ferry.DateOf(parsed), true, nil
	case strings.Contains(caption, "started"):
		if len(words) < 4 {
			return "", ferry.Date{}, false, fmt.Errorf("caption %q is too short", caption)
		}

		year := strings.TrimSuffix(words[len(words)-1], ".")
		name = fmt.Sprintf("%s %s Schedule", capitalize(words[1]), year)
		value := strings.Join(words[len(words)-3:], " ")

		parsed, err := time.Parse("January 2, 2006.", value)
		if err != nil {
			return "", ferry.Date{}, false, fmt.Errorf("caption %q: %w", caption, err)
		}

		return name, ferry.DateOf(parsed), true, nil
	default:
		return "", ferry.Date{}, false, nil
	}
}

// parseLocationTable reads the destination from the second header cell, dropping its first
// word ("Departs"), and the two departure columns from the body rows.
func parseLocationTable(table *html.Node) (string, ferry.LocationSchedule, error) {
	head := findFirst(table, isElement(atom.Thead))
	if head == nil {
		return "", nil, fmt.Errorf("schedule table has no header")
	}

	headerRow := findFirst(head, isElement(atom.Tr))
	if headerRow == nil {
		return "", nil, fmt.Errorf("schedule table has no header row")
	}

	headers := childElements(headerRow, atom.Th)
	if len(headers) < 2 {
		return "", nil, fmt.Errorf("schedule table header has %d cells", len(headers))
	}

	words := strings.Fields(text(headers[1]))
	if len(words) < 2 {
		return "", nil, fmt.Errorf("cannot read location from header %q", text(headers[1]))
	}
	location := strings.Join(words[1:], " ")

	times := ferry.LocationSchedule{
		ferry.DirectionDepartsCity:   []ferry.TimeOfDay{},
		ferry.DirectionDepartsIsland: []ferry.TimeOfDay{},
	}

	body := findFirst(table, isElement(atom.Tbody))
	if body == nil {
		return location, times, nil
	}

	for _, row := range childElements(body, atom.Tr) {
		cells := childElements(row, atom.Td)

		for i, direction := range []ferry.Direction{ferry.DirectionDepartsCity, ferry.DirectionDepartsIsland} {
			if i >= len(cells) {
				break
			}

			value := text(cells[i])
			if value == "" {
				continue
			}

			t, err := parseTwelveHourTime(value)
			if err != nil {
				return "", nil, fmt.Errorf("%s: %w", location, err)
			}

			times[direction] = append(times[direction], t)
		}
	}

	return location, times, nil
}

// parseTwelveHourTime converts "9:05 a.m." style times.
func parseTwelveHourTime(value string) (ferry.TimeOfDay, error) {
	normalised := strings.NewReplacer("a.m.", "AM", "p.m.", "PM", "am", "AM", "pm", "PM").Replace(strings.ToLower(value))

	parsed, err := time.Parse("3:04 PM", normalised)
	if err != nil {
		return ferry.TimeOfDay{}, fmt.Errorf("unreadable time %q", value)
	}

	return ferry.TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

func populateEndDates(schedules []*ferry.Schedule) {
	slices.SortStableFunc(schedules, func(a *ferry.Schedule, b *ferry.Schedule) int {
		return a.Start.Compare(b.Start)
	})

	for i := 0; i < len(schedules)-1; i++ {
		end := schedules[i+1].Start.AddDays(-1)
		schedules[i].End = &end
	}
}

func capitalize(word string) string {
	if word == "" {
		return word
	}

	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
