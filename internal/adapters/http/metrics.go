package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowscope_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"route", "status"})

	wsClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "flowscope_ws_clients",
		Help: "Currently connected websocket clients.",
	})

	wsBroadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flowscope_ws_broadcasts_total",
		Help: "Topology updates pushed over websocket connections.",
	})
)

// MetricsMiddleware counts requests per route and status.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		route := c.Route().Path
		httpRequests.WithLabelValues(route, strconv.Itoa(c.Response().StatusCode())).Inc()
		return err
	}
}
