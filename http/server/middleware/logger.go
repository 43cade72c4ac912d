package middleware

import (
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/docstore/http/server"
	"github.com/rise-and-shine/docstore/logger"
	"github.com/rise-and-shine/docstore/meta"
)

// NewLoggerMW creates a middleware that logs HTTP requests and responses.
//
// This middleware captures comprehensive information about each request including
// method, path, status code, duration, and tenant context. It also logs errors with
// detailed information when they occur. The logging level is determined by the
// HTTP status code (info for 2xx/3xx, warn for 4xx, error for 5xx).
func NewLoggerMW() server.Middleware {
	return server.Middleware{
		Priority: 500,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := c.Next()

			ctx := c.UserContext()
			statusCode := c.Response().StatusCode()

			log := logger.Named("middleware.logger").WithContext(ctx).
				With("http_status_code", statusCode).
				With("http_method", c.Method()).
				With("http_path", c.Path()).
				With("http_route", c.Route().Path).
				With("hostname", c.Hostname()).
				With("duration", time.Since(start).Round(time.Microsecond)).
				With("request_size", c.Request().Header.ContentLength()).
				With("tenant_id", meta.GetTenantID(ctx))

			if err != nil {
				e := errx.AsErrorX(err)
				log = log.With("error", map[string]any{
					"code":    e.Code(),
					"message": e.Error(),
					"type":    e.Type().String(),
					"trace":   e.Trace(),
					"fields":  e.Fields(),
					"details": e.Details(),
				})
			}

			switch {
			case statusCode >= 500:
				log.Error("request failed")
			case statusCode >= 400:
				log.Warn("request rejected")
			default:
				log.Info("request processed successfully")
			}

			return err
		},
	}
}
