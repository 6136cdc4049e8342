package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/usecase"
)

func (s *Server) getUID(c echo.Context) (string, error) {
	if s.opts.Local {
		if uid := c.Request().Header.Get(config.HEADER_KEY_X_USER_ID); uid != "" {
			return uid, nil
		}
	}

	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		return "", usecase.ErrUnauthenticated
	}

	return s.server.VerifyIDToken(c.Request().Context(), token)
}

// AuthMiddleware check authorization header and verify the token
// using injected server.VerifyIDToken method, transforms request
// to have the principal in downstream context.
func (s *Server) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, err := s.getUID(c)
		if err != nil || uid == "" {
			return c.JSON(http.StatusUnauthorized, Res{Error: "Unauthenticated"})
		}

		ctx := usecase.WithPrincipal(c.Request().Context(), uid)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RateLimitMiddleware limits each principal, or each IP for anonymous
// callers, to the configured requests per second.
func (s *Server) RateLimitMiddleware() echo.MiddlewareFunc {
	if s.opts.RateLimit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(s.opts.RateLimit)),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if uid, err := usecase.PrincipalFrom(c.Request().Context()); err == nil {
				return uid, nil
			}
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, Res{Error: "Too many requests"})
		},
	})
}
