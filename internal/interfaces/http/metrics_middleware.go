package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-erp/pkg/metrics"
)

// MetricsMiddleware registra contador y latencia por ruta. Usa la plantilla
// de la ruta (no la URL concreta) para acotar la cardinalidad de etiquetas.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		path := c.Route().Path
		method := c.Method()
		metrics.HTTPRequestsTotal.
			WithLabelValues(method, path, strconv.Itoa(c.Response().StatusCode())).
			Inc()
		metrics.HTTPRequestDuration.
			WithLabelValues(method, path).
			Observe(time.Since(start).Seconds())
		return err
	}
}
