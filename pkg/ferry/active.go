package ferry

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"golang.org/x/exp/slices"
)

// OverlapPolicy decides what happens when more than one active schedule covers the same route.
type OverlapPolicy string

const (
	// OverlapAll keeps every active schedule, so a route may show more than one table.
	OverlapAll OverlapPolicy = "all"
	// OverlapLatestStart keeps, per route, only the active schedule that started most recently.
	OverlapLatestStart OverlapPolicy = "latest-start"
)

func ParseOverlapPolicy(value string) (OverlapPolicy, error) {
	switch OverlapPolicy(value) {
	case OverlapAll, OverlapLatestStart:
		return OverlapPolicy(value), nil
	case "":
		return OverlapLatestStart, nil
	default:
		return "", fmt.Errorf("unknown overlap policy %q", value)
	}
}

type SelectOptions struct {
	Location *time.Location
	Overlap  OverlapPolicy
}

func (o SelectOptions) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}

	return o.Location
}

// Today returns the civil date of now in the selector's timezone.
func (o SelectOptions) Today(now time.Time) Date {
	return DateOf(now.In(o.location()))
}

// ActiveSchedules returns copies of the schedules whose inclusive date range contains today,
// in document order, with overlaps resolved according to the policy.
func ActiveSchedules(now time.Time, schedules []*Schedule, options SelectOptions) []*Schedule {
	today := options.Today(now)

	var active []*Schedule
	for _, schedule := range schedules {
		if schedule != nil && schedule.Contains(today) {
			active = append(active, schedule)
		}
	}

	if options.Overlap != OverlapLatestStart {
		return cloneSchedules(active)
	}

	winners := map[Route]int{}
	for i, schedule := range active {
		for _, route := range schedule.Routes() {
			current, exists := winners[route]
			if !exists || !schedule.Start.Before(active[current].Start) {
				winners[route] = i
			}
		}
	}

	var selected []*Schedule
	for i, schedule := range active {
		clone := cloneSchedule(schedule)

		for locationName, location := range clone.Locations {
			for direction := range location {
				if winners[Route{Location: locationName, Direction: direction}] != i {
					delete(location, direction)
				}
			}

			if len(location) == 0 {
				delete(clone.Locations, locationName)
			}
		}

		if len(clone.Locations) > 0 {
			selected = append(selected, clone)
		}
	}

	return selected
}

// ActiveRoutes lists the distinct routes served today, sorted by location then direction.
func ActiveRoutes(now time.Time, schedules []*Schedule, options SelectOptions) []Route {
	var routes []Route

	for _, schedule := range ActiveSchedules(now, schedules, options) {
		for _, route := range schedule.Routes() {
			if !slices.Contains(routes, route) {
				routes = append(routes, route)
			}
		}
	}

	slices.SortFunc(routes, func(a Route, b Route) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})

	return routes
}

// SchedulesForRoute returns the active schedules that carry times for route.
func SchedulesForRoute(now time.Time, schedules []*Schedule, route Route, options SelectOptions) []*Schedule {
	active := ActiveSchedules(now, schedules, options)

	return slices.DeleteFunc(active, func(schedule *Schedule) bool {
		_, ok := schedule.Times(route)
		return !ok
	})
}

func cloneSchedules(schedules []*Schedule) []*Schedule {
	clones := make([]*Schedule, 0, len(schedules))
	for _, schedule := range schedules {
		clones = append(clones, cloneSchedule(schedule))
	}

	return clones
}

func cloneSchedule(schedule *Schedule) *Schedule {
	var clone Schedule
	if err := copier.CopyWithOption(&clone, schedule, copier.Option{DeepCopy: true}); err != nil {
		panic(err)
	}

	return &clone
}
