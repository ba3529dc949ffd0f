package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rileyhilliard/pingdeck/internal/logger"
)

// requestLogger logs one debug line per request:
// GET /api/hosts -> 200 OK (1ms) from 127.0.0.1
func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			path := req.URL.Path
			if req.URL.RawQuery != "" {
				path += "?" + req.URL.RawQuery
			}

			log.Debug("%s %s -> %d %s (%dms) from %s",
				req.Method, path, res.Status, http.StatusText(res.Status),
				time.Since(start).Milliseconds(), c.RealIP())
			return nil
		}
	}
}

// recoverer turns handler panics into 500 responses.
func recoverer(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("recovered from panic: %v", r)
					err = fmt.Errorf("internal server error")
				}
			}()
			return next(c)
		}
	}
}
