package ferry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveSchedulesDateWindow(t *testing.T) {
	location := toronto(t)
	schedules := sampleSchedules(t)
	options := SelectOptions{Location: location, Overlap: OverlapAll}

	tests := []struct {
		name     string
		now      time.Time
		expected []string
	}{
		{
			name:     "before any schedule",
			now:      time.Date(2024, time.April, 11, 23, 59, 0, 0, location),
			expected: nil,
		},
		{
			name:     "first day is inclusive",
			now:      time.Date(2024, time.April, 12, 0, 0, 0, 0, location),
			expected: []string{"Spring 2024 Schedule"},
		},
		{
			name:     "last day is inclusive",
			now:      time.Date(2024, time.June, 20, 23, 59, 0, 0, location),
			expected: []string{"Spring 2024 Schedule"},
		},
		{
			name:     "open ended schedule",
			now:      time.Date(2024, time.June, 21, 6, 0, 0, 0, location),
			expected: []string{"Summer 2024 Schedule"},
		},
		{
			name:     "open ended far future",
			now:      time.Date(2150, time.January, 1, 12, 0, 0, 0, location),
			expected: []string{"Summer 2024 Schedule"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, schedule := range ActiveSchedules(tt.now, schedules, options) {
				names = append(names, schedule.Name)
			}

			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestActiveSchedulesUsesCivilDateOfTimezone(t *testing.T) {
	location := toronto(t)
	schedules := sampleSchedules(t)

	// 02:30 UTC on June 21 is still June 20 in Toronto
	now := time.Date(2024, time.June, 21, 2, 30, 0, 0, time.UTC)

	active := ActiveSchedules(now, schedules, SelectOptions{Location: location, Overlap: OverlapAll})
	require.Len(t, active, 1)
	assert.Equal(t, "Spring 2024 Schedule", active[0].Name)

	active = ActiveSchedules(now, schedules, SelectOptions{Location: time.UTC, Overlap: OverlapAll})
	require.Len(t, active, 1)
	assert.Equal(t, "Summer 2024 Schedule", active[0].Name)
}

func overlappingSchedules(t *testing.T) []*Schedule {
	t.Helper()

	document, err := ParseDocument([]byte(`{"schedules": [
		{"name": "base", "start": "2024-01-01", "locations": {
			"Centre Island": {"Departs City": ["09:00"], "Departs Island": ["09:30"]},
			"Hanlan's Point": {"Departs City": ["10:00"]}
		}},
		{"name": "holiday", "start": "2024-05-18", "end": "2024-05-20", "locations": {
			"Centre Island": {"Departs City": ["08:00", "12:00"]}
		}}
	]}`))
	require.NoError(t, err)

	return document.Schedules
}

func TestActiveSchedulesOverlapAll(t *testing.T) {
	location := toronto(t)
	now := time.Date(2024, time.May, 19, 7, 0, 0, 0, location)

	active := ActiveSchedules(now, overlappingSchedules(t), SelectOptions{Location: location, Overlap: OverlapAll})
	require.Len(t, active, 2)

	route := Route{Location: "Centre Island", Direction: DirectionDepartsCity}
	matching := SchedulesForRoute(now, overlappingSchedules(t), route, SelectOptions{Location: location, Overlap: OverlapAll})
	require.Len(t, matching, 2)
	assert.Equal(t, "base", matching[0].Name)
	assert.Equal(t, "holiday", matching[1].Name)
}

func TestActiveSchedulesOverlapLatestStart(t *testing.T) {
	location := toronto(t)
	now := time.Date(2024, time.May, 19, 7, 0, 0, 0, location)
	options := SelectOptions{Location: location, Overlap: OverlapLatestStart}

	active := ActiveSchedules(now, overlappingSchedules(t), options)
	require.Len(t, active, 2)

	base, holiday := active[0], active[1]
	assert.Equal(t, "base", base.Name)
	_, hasCityDepartures := base.Times(Route{Location: "Centre Island", Direction: DirectionDepartsCity})
	assert.False(t, hasCityDepartures)
	_, hasIslandDepartures := base.Times(Route{Location: "Centre Island", Direction: DirectionDepartsIsland})
	assert.True(t, hasIslandDepartures)

	cityTimes, ok := holiday.Times(Route{Location: "Centre Island", Direction: DirectionDepartsCity})
	require.True(t, ok)
	assert.Equal(t, times("08:00", "12:00"), cityTimes)

	route := Route{Location: "Centre Island", Direction: DirectionDepartsCity}
	matching := SchedulesForRoute(now, overlappingSchedules(t), route, options)
	require.Len(t, matching, 1)
	assert.Equal(t, "holiday", matching[0].Name)
}

func TestActiveSchedulesOverlapTieGoesToLaterRecord(t *testing.T) {
	document, err := ParseDocument([]byte(`{"schedules": [
		{"name": "first", "start": "2024-01-01", "locations": {"Centre Island": {"Departs City": ["09:00"]}}},
		{"name": "second", "start": "2024-01-01", "locations": {"Centre Island": {"Departs City": ["10:00"]}}}
	]}`))
	require.NoError(t, err)

	now := time.Date(2024, time.February, 1, 7, 0, 0, 0, time.UTC)
	active := ActiveSchedules(now, document.Schedules, SelectOptions{Location: time.UTC, Overlap: OverlapLatestStart})

	require.Len(t, active, 1)
	assert.Equal(t, "second", active[0].Name)
}

func TestActiveSchedulesReturnsCopies(t *testing.T) {
	schedules := sampleSchedules(t)
	now := time.Date(2024, time.May, 1, 7, 0, 0, 0, time.UTC)

	active := ActiveSchedules(now, schedules, SelectOptions{Location: time.UTC, Overlap: OverlapAll})
	require.Len(t, active, 1)

	delete(active[0].Locations, "Centre Island")
	active[0].Locations["Ward's Island"][DirectionDepartsCity][0] = MustParseTimeOfDay("23:00")

	assert.Contains(t, schedules[0].Locations, "Centre Island")
	assert.Equal(t, MustParseTimeOfDay("06:35"), schedules[0].Locations["Ward's Island"][DirectionDepartsCity][0])
}

func TestActiveRoutes(t *testing.T) {
	location := toronto(t)
	now := time.Date(2024, time.May, 19, 7, 0, 0, 0, location)

	routes := ActiveRoutes(now, overlappingSchedules(t), SelectOptions{Location: location, Overlap: OverlapAll})

	assert.Equal(t, []Route{
		{Location: "Centre Island", Direction: DirectionDepartsCity},
		{Location: "Centre Island", Direction: DirectionDepartsIsland},
		{Location: "Hanlan's Point", Direction: DirectionDepartsCity},
	}, routes)
}

func TestParseOverlapPolicy(t *testing.T) {
	policy, err := ParseOverlapPolicy("")
	require.NoError(t, err)
	assert.Equal(t, OverlapLatestStart, policy)

	policy, err = ParseOverlapPolicy("all")
	require.NoError(t, err)
	assert.Equal(t, OverlapAll, policy)

	_, err = ParseOverlapPolicy("first")
	assert.Error(t, err)
}

func TestRouteKeyRoundTrip(t *testing.T) {
	route := Route{Location: "Ward's Island", Direction: DirectionDepartsIsland}

	parsed, err := ParseRouteKey(route.Key())
	require.NoError(t, err)
	assert.Equal(t, route, parsed)

	assert.Equal(t, "Ward's Island to City", route.Label())
	assert.Equal(t, "City to Ward's Island", Route{Location: "Ward's Island", Direction: DirectionDepartsCity}.Label())

	parsed, err = ParseRouteKey(`{"location":"Centre Island","direction":"departsCity"}`)
	require.NoError(t, err)
	assert.Equal(t, DirectionDepartsCity, parsed.Direction)

	for _, key := range []string{"", "Centre Island", `{"direction":"Departs City"}`, `{"location":"Centre Island","direction":"north"}`} {
		_, err := ParseRouteKey(key)
		assert.Error(t, err, key)
	}
}
