package ferry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Route is a location and travel direction pair chosen by a rider.
type Route struct {
	Location  string    `json:"location"`
	Direction Direction `json:"direction"`
}

// Key serialises the route into the opaque value used by the route selector.
func (r Route) Key() string {
	key, _ := json.Marshal(r)
	return string(key)
}

func ParseRouteKey(key string) (Route, error) {
	if strings.TrimSpace(key) == "" {
		return Route{}, errors.New("route key is empty")
	}

	var raw struct {
		Location  string `json:"location"`
		Direction string `json:"direction"`
	}
	if err := json.Unmarshal([]byte(key), &raw); err != nil {
		return Route{}, fmt.Errorf("route key %q is malformed: %w", key, err)
	}

	if raw.Location == "" {
		return Route{}, fmt.Errorf("route key %q has no location", key)
	}

	direction, err := ParseDirection(raw.Direction)
	if err != nil {
		return Route{}, fmt.Errorf("route key %q: %w", key, err)
	}

	return Route{Location: raw.Location, Direction: direction}, nil
}

func (r Route) Label() string {
	switch r.Direction {
	case DirectionDepartsCity:
		return fmt.Sprintf("City to %s", r.Location)
	case DirectionDepartsIsland:
		return fmt.Sprintf("%s to City", r.Location)
	default:
		return fmt.Sprintf("%s (%s)", r.Location, r.Direction)
	}
}

func (r Route) Less(other Route) bool {
	if r.Location != other.Location {
		return r.Location < other.Location
	}

	return r.Direction.order() < other.Direction.order()
}

// RouteOption is a route as presented in the route selector.
type RouteOption struct {
	Key       string    `json:"key"`
	Location  string    `json:"location"`
	Direction Direction `json:"direction"`
	Label     string    `json:"label"`
}

func (r Route) Option() RouteOption {
	return RouteOption{
		Key:       r.Key(),
		Location:  r.Location,
		Direction: r.Direction,
		Label:     r.Label(),
	}
}
