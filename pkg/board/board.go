package board

import (
	"time"

	"github.com/travigo/islandferry/pkg/ferry"
)

// Departure is one row of a board.
type Departure struct {
	Time         ferry.TimeOfDay `json:"time" groups:"basic,detailed"`
	Display      string          `json:"display" groups:"basic,detailed"`
	Highlight    bool            `json:"highlight" groups:"basic,detailed"`
	MinutesUntil int             `json:"minutesUntil" groups:"detailed"`
}

// Board is the table of one schedule record for one route.
type Board struct {
	Schedule  string          `json:"schedule" groups:"detailed"`
	Start     ferry.Date      `json:"start" groups:"detailed"`
	End       *ferry.Date     `json:"end" groups:"detailed"`
	Location  string          `json:"location" groups:"basic,detailed"`
	Direction ferry.Direction `json:"direction" groups:"basic,detailed"`
	Label     string          `json:"label" groups:"basic,detailed"`
	Upcoming  []Departure     `json:"upcoming" groups:"basic,detailed"`
	Past      []Departure     `json:"past" groups:"detailed"`
}

// PageState is everything the page and fragment templates read.
type PageState struct {
	Clock    string
	Timezone string
	Routes   []ferry.RouteOption
	Selected *ferry.Route
	Boards   []Board
}

func (p PageState) SelectedKey() string {
	if p.Selected == nil {
		return ""
	}

	return p.Selected.Key()
}

func (p PageState) SelectedLabel() string {
	if p.Selected == nil {
		return ""
	}

	return p.Selected.Label()
}

type Builder struct {
	Classifier *ferry.Classifier
	Overlap    ferry.OverlapPolicy
}

func NewBuilder(location *time.Location, window time.Duration, overlap ferry.OverlapPolicy) *Builder {
	return &Builder{
		Classifier: ferry.NewClassifier(location, window),
		Overlap:    overlap,
	}
}

func (b *Builder) options() ferry.SelectOptions {
	return ferry.SelectOptions{
		Location: b.Classifier.Location,
		Overlap:  b.Overlap,
	}
}

// Routes lists today's active routes as selector options.
func (b *Builder) Routes(now time.Time, document *ferry.Document) []ferry.RouteOption {
	options := []ferry.RouteOption{}
	for _, route := range ferry.ActiveRoutes(now, document.Schedules, b.options()) {
		options = append(options, route.Option())
	}

	return options
}

// Boards builds one board per active schedule serving route, in document order.
func (b *Builder) Boards(now time.Time, document *ferry.Document, route ferry.Route) []Board {
	boards := []Board{}

	for _, schedule := range ferry.SchedulesForRoute(now, document.Schedules, route, b.options()) {
		times, _ := schedule.Times(route)
		future, past := b.Classifier.Split(times, now)

		board := Board{
			Schedule:  schedule.Name,
			Start:     schedule.Start,
			End:       schedule.End,
			Location:  route.Location,
			Direction: route.Direction,
			Label:     route.Label(),
			Upcoming:  make([]Departure, 0, len(future)),
			Past:      make([]Departure, 0, len(past)),
		}

		for _, t := range future {
			board.Upcoming = append(board.Upcoming, Departure{
				Time:         t,
				Display:      t.AmPm(),
				Highlight:    b.Classifier.WithinWindow(t, now),
				MinutesUntil: b.Classifier.MinutesUntil(t, now),
			})
		}

		for _, t := range past {
			board.Past = append(board.Past, Departure{
				Time:         t,
				Display:      t.AmPm(),
				MinutesUntil: b.Classifier.MinutesUntil(t, now),
			})
		}

		boards = append(boards, board)
	}

	return boards
}

// Page assembles the full page state. selected may be nil when no route is chosen yet.
func (b *Builder) Page(now time.Time, document *ferry.Document, selected *ferry.Route) PageState {
	state := PageState{
		Clock:    ferry.FormatClock(now.In(b.Classifier.Location)),
		Timezone: b.Classifier.Location.String(),
		Routes:   b.Routes(now, document),
		Selected: selected,
	}

	if selected != nil {
		state.Boards = b.Boards(now, document, *selected)
	}

	return state
}
