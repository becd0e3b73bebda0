package http

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/fichaje/workday-api/internal/infrastructure/http/handlers"
)

// RegisterProbes mounts the health endpoints on e. They sit outside every
// identity check. rdb may be nil.
func RegisterProbes(e *echo.Echo, db *sql.DB, rdb *redis.Client) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: is storage reachable?
}
