package http_server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var requestDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
	Name:       "islandferry_http_request_duration_seconds",
	Help:       "Time spent serving HTTP requests",
	Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
}, []string{"method", "route", "status"})

func init() {
	prometheus.MustRegister(requestDuration)
}

// NewMetrics records request durations labelled by the matched route pattern.
func NewMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		err := c.Next()

		requestDuration.With(prometheus.Labels{
			"method": c.Method(),
			"route":  c.Route().Path,
			"status": strconv.Itoa(statusCode(c, err)),
		}).Observe(time.Since(startTime).Seconds())

		return err
	}
}

// MetricsHandler exposes the default prometheus registry.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
