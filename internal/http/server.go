package http

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/jmehdipour/customers-api/internal/config"
	"github.com/jmehdipour/customers-api/internal/http/middleware"
	"github.com/jmehdipour/customers-api/internal/metrics"
	"github.com/jmehdipour/customers-api/internal/repository"
	"github.com/jmehdipour/customers-api/internal/util"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

//go:embed openapi.json
var openAPIDocument []byte

// ReadinessCheck reports whether the backing store can serve requests. A nil
// check means always ready.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

func NewServer(cfg config.Config, repo repository.CustomersRepository, notifier WelcomeNotifier, ready ReadinessCheck, logger *zap.Logger) *Server {
	// echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.ERROR)
	e.Validator = middleware.NewValidator()

	e.Use(
		echoMid.Recover(),
		echoMid.RequestIDWithConfig(echoMid.RequestIDConfig{Generator: util.NewRequestID}),
		requestLogger(logger),
	)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/readyz", readyHandler(ready, logger))

	// api description, development only
	if cfg.IsDevelopment() {
		e.GET("/openapi/v1.json", func(c echo.Context) error {
			return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPIDocument)
		})
	}

	// routes
	idMW := middleware.UUIDParam("id")
	validateMW := middleware.ValidateCustomer()

	customers := e.Group("/customers")
	customers.GET("", listCustomersHandler(repo, logger))
	customers.GET("/:id", getCustomerHandler(repo, logger), idMW)
	customers.POST("", createCustomerHandler(repo, notifier, cfg.Customers.DefaultEmail, logger), validateMW)
	customers.PUT("/:id", updateCustomerHandler(repo, logger), idMW, validateMW)
	customers.DELETE("/:id", deleteCustomerHandler(repo, logger), idMW, middleware.ValidateDelete())

	return &Server{e: e, log: logger}
}

func readyHandler(ready ReadinessCheck, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ready != nil {
			if err := ready(c.Request().Context()); err != nil {
				log.Warn("store not ready", zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "not ready"})
			}
		}
		return c.String(http.StatusOK, "ready")
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return echoMid.RequestLoggerWithConfig(echoMid.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echoMid.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}

// ServeHTTP lets the server be driven directly, e.g. by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.e.ServeHTTP(w, r) }

func (s *Server) Start(addr string) error {
	s.log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
