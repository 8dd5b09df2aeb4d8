package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/islandferry/pkg/api/routes"
	"github.com/travigo/islandferry/pkg/board"
	"github.com/travigo/islandferry/pkg/ferry"
)

const sampleDocument = `{
    "schedules": [
        {
            "name": "Spring 2024",
            "start": "2024-04-15",
            "end": "2024-05-16",
            "locations": {
                "Centre Island": {
                    "Departs City": ["08:00", "09:00", "10:00", "11:30"],
                    "Departs Island": ["08:30", "09:30"]
                }
            }
        }
    ]
}`

type staticSource struct {
	err error
}

func (s *staticSource) Name() string {
	return "static"
}

func (s *staticSource) Load(ctx context.Context) (*ferry.Document, error) {
	if s.err != nil {
		return nil, s.err
	}

	return ferry.ParseDocument([]byte(sampleDocument))
}

func newTestApp(t *testing.T, source *staticSource) *fiber.App {
	t.Helper()

	location, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	return NewApp(&routes.Backend{
		Source:  source,
		Builder: board.NewBuilder(location, time.Hour, ferry.OverlapLatestStart),
		Now: func() time.Time {
			return time.Date(2024, time.May, 1, 9, 15, 0, 0, location)
		},
	})
}

var centreIslandFromCity = ferry.Route{Location: "Centre Island", Direction: ferry.DirectionDepartsCity}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestVersion(t *testing.T) {
	resp, body := get(t, newTestApp(t, &staticSource{}), "/api/version")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"version": "v1.0"}`, body)
}

func TestClock(t *testing.T) {
	app := newTestApp(t, &staticSource{})

	_, body := get(t, app, "/api/clock")
	assert.JSONEq(t, `{"time": "09:15:00 AM", "timezone": "America/Toronto"}`, body)

	_, body = get(t, app, "/api/clock?at="+url.QueryEscape("2024-05-01T18:30:05Z"))
	assert.JSONEq(t, `{"time": "02:30:05 PM", "timezone": "America/Toronto"}`, body)

	resp, _ := get(t, app, "/api/clock?at=yesterday")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRoutes(t *testing.T) {
	resp, body := get(t, newTestApp(t, &staticSource{}), "/api/routes")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var options []ferry.RouteOption
	require.NoError(t, json.Unmarshal([]byte(body), &options))

	require.Len(t, options, 2)
	assert.Equal(t, centreIslandFromCity.Key(), options[0].Key)
	assert.Equal(t, "City to Centre Island", options[0].Label)
	assert.Equal(t, "Centre Island to City", options[1].Label)
}

func TestRoutesOutsideSchedule(t *testing.T) {
	_, body := get(t, newTestApp(t, &staticSource{}), "/api/routes?at="+url.QueryEscape("2024-06-01T12:00:00-04:00"))

	assert.JSONEq(t, `[]`, body)
}

func TestDeparturesBasic(t *testing.T) {
	target := "/api/departures?route=" + url.QueryEscape(centreIslandFromCity.Key())
	resp, body := get(t, newTestApp(t, &staticSource{}), target)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var boards []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &boards))
	require.Len(t, boards, 1)

	assert.Equal(t, "Centre Island", boards[0]["location"])
	assert.Equal(t, "Departs City", boards[0]["direction"])
	assert.NotContains(t, boards[0], "past")
	assert.NotContains(t, boards[0], "schedule")

	upcoming := boards[0]["upcoming"].([]interface{})
	require.Len(t, upcoming, 2)

	first := upcoming[0].(map[string]interface{})
	assert.Equal(t, "10:00", first["time"])
	assert.Equal(t, "10:00 AM", first["display"])
	assert.Equal(t, true, first["highlight"])
	assert.NotContains(t, first, "minutesUntil")
}

func TestDeparturesDetailed(t *testing.T) {
	target := "/api/departures?detail=detailed&route=" + url.QueryEscape(centreIslandFromCity.Key())
	resp, body := get(t, newTestApp(t, &staticSource{}), target)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var boards []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &boards))
	require.Len(t, boards, 1)

	assert.Equal(t, "Spring 2024", boards[0]["schedule"])
	assert.Equal(t, "2024-04-15", boards[0]["start"])
	assert.Equal(t, "2024-05-16", boards[0]["end"])
	assert.Len(t, boards[0]["past"], 2)

	first := boards[0]["upcoming"].([]interface{})[0].(map[string]interface{})
	assert.EqualValues(t, 45, first["minutesUntil"])
}

func TestDeparturesErrors(t *testing.T) {
	app := newTestApp(t, &staticSource{})
	key := url.QueryEscape(centreIslandFromCity.Key())

	tests := []struct {
		name    string
		target  string
		status  int
		message string
	}{
		{name: "missing route", target: "/api/departures", status: fiber.StatusBadRequest, message: "a route must be selected"},
		{name: "malformed route", target: "/api/departures?route=centre", status: fiber.StatusBadRequest},
		{name: "unknown direction", target: "/api/departures?route=" + url.QueryEscape(`{"location":"Centre Island","direction":"Sideways"}`), status: fiber.StatusBadRequest},
		{name: "unknown detail", target: "/api/departures?detail=everything&route=" + key, status: fiber.StatusBadRequest},
		{name: "bad at", target: "/api/departures?at=noon&route=" + key, status: fiber.StatusBadRequest},
		{name: "fragment without route", target: "/departures", status: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, app, tt.target)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body, `"error"`)
			if tt.message != "" {
				assert.JSONEq(t, `{"error": "`+tt.message+`"}`, body)
			}
		})
	}
}

func TestSourceFailure(t *testing.T) {
	app := newTestApp(t, &staticSource{err: assert.AnError})

	for _, target := range []string{"/", "/api/routes", "/departures?route=" + url.QueryEscape(centreIslandFromCity.Key())} {
		resp, body := get(t, app, target)

		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode, target)
		assert.JSONEq(t, `{"error": "Could not load the ferry schedule"}`, body, target)
	}
}

func TestPage(t *testing.T) {
	resp, body := get(t, newTestApp(t, &staticSource{}), "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, fiber.MIMETextHTMLCharsetUTF8, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, body, "09:15:00 AM")
	assert.Contains(t, body, ">City to Centre Island</option>")
	assert.NotContains(t, body, "END OF THE DAY")
}

func TestPageWithRoute(t *testing.T) {
	app := newTestApp(t, &staticSource{})

	_, body := get(t, app, "/?route="+url.QueryEscape(centreIslandFromCity.Key()))
	assert.Contains(t, body, "Remaining Schedule for Centre Island today:")

	resp, body := get(t, app, "/?route=garbage")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "Remaining Schedule")
}

func TestDeparturesFragment(t *testing.T) {
	resp, body := get(t, newTestApp(t, &staticSource{}), "/departures?route="+url.QueryEscape(centreIslandFromCity.Key()))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "Ferries within the next hour are highlighted")
	assert.Contains(t, body, `<tr class="highlight"><td>10:00 AM</td></tr>`)
	assert.Contains(t, body, "END OF THE DAY")
}

func TestMetrics(t *testing.T) {
	app := newTestApp(t, &staticSource{})
	get(t, app, "/api/version")

	resp, body := get(t, app, "/metrics")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Contains(t, body, `route="/api/version"`)
}
