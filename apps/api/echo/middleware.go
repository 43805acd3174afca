package echoapi

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	requestIDHeader  = "X-Request-ID"
	contextLoggerKey = "logger"
)

// requestIDMiddleware tags the request, the response & the request logger with a request id.
func requestIDMiddleware(zl *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			reqID := ctx.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.New().String()
				ctx.Request().Header.Set(requestIDHeader, reqID)
			}
			ctx.Response().Header().Set(requestIDHeader, reqID)
			ctx.Set(contextLoggerKey, zl.With(zap.String("request_id", reqID)))
			return next(ctx)
		}
	}
}

func contextLogger(ctx echo.Context) *zap.Logger {
	if zl, ok := ctx.Get(contextLoggerKey).(*zap.Logger); ok {
		return zl
	}
	return zap.NewNop()
}

func requestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err) // commits the response, so its status is known
			}
			req, res := ctx.Request(), ctx.Response()
			contextLogger(ctx).Info("request",
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes_out", res.Size),
				zap.String("remote_ip", ctx.RealIP()),
			)
			return nil
		}
	}
}

type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authFailures    prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, prefix string) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		authFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_failures_total",
				Help: "Total number of requests rejected for a missing or invalid session",
			},
		),
	}
}

func (m *metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)
		if err != nil {
			ctx.Error(err)
		}

		status := strconv.Itoa(ctx.Response().Status)
		if status == "401" {
			m.authFailures.Inc()
		}
		m.requestsTotal.WithLabelValues(ctx.Request().Method, ctx.Path(), status).Inc()
		m.requestDuration.WithLabelValues(ctx.Request().Method, ctx.Path(), status).Observe(time.Since(start).Seconds())
		return nil
	}
}
