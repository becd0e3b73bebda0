package api

import (
	"database/sql"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/fichaje/workday-api/docs"
	"github.com/fichaje/workday-api/internal/api/handler"
	"github.com/fichaje/workday-api/internal/api/middleware"
	"github.com/fichaje/workday-api/internal/core/ports"
	infrahttp "github.com/fichaje/workday-api/internal/infrastructure/http"
)

const bodyLimit = "1M"

// Deps carries everything the router needs. Redis may be nil. A nil Registry
// means the Prometheus default registry.
type Deps struct {
	Log            zerolog.Logger
	DB             *sql.DB
	Redis          *redis.Client
	AuthService    ports.AuthService
	UserService    ports.UserService
	WorkdayService ports.WorkdayService
	IdentityHeader string
	AdminDNI       string
	CORSOrigins    []string
	Registry       *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept, d.IdentityHeader},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "workday",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no identity required) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	infrahttp.RegisterProbes(e, d.DB, d.Redis)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	workdayHandler := handler.NewWorkdayHandler(d.WorkdayService)
	adminHandler := handler.NewAdminHandler(d.UserService, d.WorkdayService)

	identity := middleware.Identity(d.IdentityHeader)

	// --- Auth ---
	e.POST("/login", authHandler.Login)

	// --- Caller's workdays ---
	e.GET("/workday", workdayHandler.Get, identity)
	e.POST("/workday", workdayHandler.Save, identity)
	e.POST("/workday/delete", workdayHandler.Delete, identity)
	e.GET("/workdays/user", workdayHandler.ListForUser, identity)

	// --- Admin ---
	admin := e.Group("/admin", identity, middleware.RequireAdmin(d.AdminDNI))
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/register_user", adminHandler.RegisterUser)
	admin.PUT("/user/:dni", adminHandler.UpdateUser)
	admin.DELETE("/user/:dni", adminHandler.DeleteUser)
	admin.GET("/all_workdays", adminHandler.AllWorkdays)

	return e
}

// requestLogger writes one access-log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
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
