package ferry

import (
	"fmt"
	"strings"
)

type Direction string

const (
	DirectionDepartsCity   Direction = "Departs City"
	DirectionDepartsIsland Direction = "Departs Island"
)

// Direction keys as they appear across published timetable files.
var directionAliases = map[string]Direction{
	"departs city":   DirectionDepartsCity,
	"departscity":    DirectionDepartsCity,
	"departs_city":   DirectionDepartsCity,
	"departs island": DirectionDepartsIsland,
	"departsisland":  DirectionDepartsIsland,
	"departs_island": DirectionDepartsIsland,
}

func ParseDirection(value string) (Direction, error) {
	direction, ok := directionAliases[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", fmt.Errorf("unknown direction %q", value)
	}

	return direction, nil
}

func (d Direction) String() string {
	return string(d)
}

// order sorts city departures ahead of island departures.
func (d Direction) order() int {
	switch d {
	case DirectionDepartsCity:
		return 0
	case DirectionDepartsIsland:
		return 1
	default:
		return 2
	}
}
