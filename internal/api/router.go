package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/corehr/employee-api/docs"
	"github.com/corehr/employee-api/internal/api/handler"
	"github.com/corehr/employee-api/internal/api/middleware"
	"github.com/corehr/employee-api/internal/core/ports"
)

// Deps carries everything the HTTP layer needs from the composition root.
type Deps struct {
	Log             zerolog.Logger
	AuthService     ports.AuthService
	EmployeeService ports.EmployeeService
	// HealthChecks are pinged by GET /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.PingFunc
	// EnableLogout mounts POST /auth/logout; it needs a token revocation store.
	EnableLogout bool
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "employee_api",
		Subsystem:                 "http",
		Registerer:                deps.Registerer,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(requestLogger(deps.Log))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := middleware.Auth(deps.AuthService)
	requireAdmin := middleware.RequireAdmin()

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)
	if deps.EnableLogout {
		auth.POST("/logout", authHandler.Logout, requireAuth)
	}

	// --- Employee routes (JWT required; mutations admin only) ---
	employeeHandler := handler.NewEmployeeHandler(deps.EmployeeService)
	employees := e.Group("/employees", requireAuth)
	for _, root := range []string{"", "/"} {
		employees.POST(root, employeeHandler.Create, requireAdmin)
		employees.GET(root, employeeHandler.List)
	}
	employees.GET("/:id", employeeHandler.Get)
	employees.PUT("/:id", employeeHandler.Update, requireAdmin)
	employees.DELETE("/:id", employeeHandler.Delete, requireAdmin)

	return e
}

// requestLogger writes one zerolog entry per request. Errors are handed to the
// HTTP error handler first so the logged status matches the response.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
