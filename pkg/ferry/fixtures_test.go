package ferry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
    "schedules": [
        {
            "name": "Spring 2024 Schedule",
            "start": {"year": 2024, "month": 4, "day": 12},
            "end": {"year": "2024", "month": "6", "day": "20"},
            "locations": {
                "Centre Island": {
                    "Departs City": ["08:00", "09:30", "11:00"],
                    "Departs Island": ["08:30", "10:00", "11:30"]
                },
                "Ward's Island": {
                    "departsCity": ["06:35", "07:00"],
                    "departsIsland": ["06:50", "07:20"]
                }
            }
        },
        {
            "name": "Summer 2024 Schedule",
            "start": "2024-06-21",
            "end": {},
            "locations": {
                "Centre Island": {
                    "Departs City": ["08:00", "08:15", "08:30"],
                    "Departs Island": ["08:20", "08:45"]
                }
            }
        }
    ]
}`

func toronto(t *testing.T) *time.Location {
	t.Helper()

	location, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	return location
}

func sampleSchedules(t *testing.T) []*Schedule {
	t.Helper()

	document, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)

	return document.Schedules
}

func times(values ...string) []TimeOfDay {
	parsed := make([]TimeOfDay, 0, len(values))
	for _, value := range values {
		parsed = append(parsed, MustParseTimeOfDay(value))
	}

	return parsed
}
