package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nylose/sportcenter/internal/metrics"
)

// Metrics records the request counter and latency histogram for every
// request. Labels use the registered route pattern (c.Path()), not the raw
// URL, so /api/admin/sports/17 and /18 share one series.
func Metrics(reg *metrics.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			// RequestLogger (inner) has already converted any handler error
			// into a response by the time the status is read here.
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			reg.HTTPRequestsTotal.WithLabelValues(route, method,
				strconv.Itoa(c.Response().Status)).Inc()
			reg.HTTPRequestDuration.WithLabelValues(route, method).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
