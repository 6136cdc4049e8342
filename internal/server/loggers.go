package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/storeease/storeease/internal/usecase"
)

func skipper(c echo.Context) bool {
	return c.Request().URL.Path == "/api/health"
}

// NewEchoLogger logs one record per request. Rejected requests (4xx) are
// warnings, server failures are errors.
func NewEchoLogger(l *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:        true,
		LogURI:           true,
		LogError:         true,
		HandleError:      true,
		LogRequestID:     true,
		LogRemoteIP:      true,
		LogMethod:        true,
		LogRoutePath:     true,
		LogUserAgent:     true,
		LogLatency:       true,
		LogContentLength: true,
		LogResponseSize:  true,
		Skipper:          skipper,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level, msg := slog.LevelInfo, "REQUEST"
			switch {
			case v.Error != nil || v.Status >= 500:
				level, msg = slog.LevelError, "REQUEST_ERROR"
			case v.Status >= 400:
				level, msg = slog.LevelWarn, "REQUEST_REJECTED"
			}

			attrs := []slog.Attr{
				slog.String("request_id", v.RequestID),
				slog.String("remote_ip", v.RemoteIP),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.String("route", v.RoutePath),
				slog.String("user_agent", v.UserAgent),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("bytes_in", v.ContentLength),
				slog.Int64("bytes_out", v.ResponseSize),
			}
			if storeID := c.Param("storeId"); storeID != "" {
				attrs = append(attrs, slog.String("store_id", storeID))
			}
			// set by AuthMiddleware on authenticated routes
			if uid, err := usecase.PrincipalFrom(c.Request().Context()); err == nil {
				attrs = append(attrs, slog.String("uid", uid))
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("err", v.Error.Error()))
			}

			l.LogAttrs(c.Request().Context(), level, msg, attrs...)
			return nil
		},
	})
}
