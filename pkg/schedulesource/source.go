package schedulesource

import (
	"context"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/travigo/islandferry/pkg/ferry"
)

// Source loads the timetable document from wherever it is published.
type Source interface {
	Load(ctx context.Context) (*ferry.Document, error)
	Name() string
}

var (
	loadCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "islandferry_schedule_load_count",
		Help: "Number of times the timetable document was loaded from its origin",
	}, []string{"source"})
	cacheHitCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "islandferry_schedule_cache_hit_count",
		Help: "Number of times the timetable document was served from the cache",
	}, []string{"source"})
	errorCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "islandferry_schedule_error_count",
		Help: "Number of times loading the timetable document failed",
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(loadCount, cacheHitCount, errorCount)
}

// NewSource returns an HTTPSource for http(s) URLs and a FileSource for anything else.
func NewSource(location string, timeout time.Duration) Source {
	if isValidUrl(location) {
		return NewHTTPSource(location, timeout)
	}

	return &FileSource{Path: location}
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

func retError(source Source, err error) (*ferry.Document, error) {
	errorCount.With(prometheus.Labels{"source": source.Name()}).Inc()
	return nil, err
}
