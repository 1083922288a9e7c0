package fakeapi

import (
	"bytes"
	"io"
	"net/http"

	"github.com/existflow/taskboard/internal/logger"
	"github.com/labstack/echo/v4"
)

// recordMiddleware logs and records every request before routing
func (s *Server) recordMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        req.Method,
			Path:          req.URL.Path,
			RawQuery:      req.URL.RawQuery,
			Authorization: req.Header.Get("Authorization"),
			Body:          string(body),
		})
		s.mu.Unlock()

		logger.Debug("Fake API request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("requestID", req.Header.Get("X-Request-ID")))

		return next(c)
	}
}

// failureMiddleware answers injected failures and holds blocked routes
func (s *Server) failureMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Method + " " + c.Request().URL.Path

		s.mu.Lock()
		f, failing := s.failures[key]
		if failing {
			delete(s.failures, key)
		}
		hold := s.hold[key]
		s.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-c.Request().Context().Done():
				return c.Request().Context().Err()
			}
		}

		if failing {
			if f.message == "" {
				return c.NoContent(f.status)
			}
			return errorJSON(c, f.status, f.message)
		}
		return next(c)
	}
}

// authMiddleware checks for a valid bearer token
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.RequireAuth {
			return next(c)
		}

		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return c.NoContent(http.StatusUnauthorized)
		}
		if !s.isValidToken(auth) {
			return errorJSON(c, http.StatusUnauthorized, "Token inválido.")
		}
		return next(c)
	}
}
