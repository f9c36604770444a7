package routes

import (
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"repair-system/pkg/config"
	"repair-system/pkg/service"
)

// Wiring every layer through InitRouter needs no live backends: constructors
// only store their dependencies, so a nil pool and nil redis client are fine
// until a request actually reaches a repository.
func TestInitRouterRegistersRoutes(t *testing.T) {
	e := echo.New()
	logger := zap.NewNop()
	cfg := &config.Config{}
	cfg.Redis.ProfileCacheTTL = time.Minute
	jwtSvc := service.NewJWTService("test-secret", time.Hour, time.Hour, logger)

	InitRouter(e, nil, nil, jwtSvc, logger, cfg)

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/refresh",
		"GET /api/profiles/me",
		"PATCH /api/profiles/me",
		"GET /api/users/technicians",
		"GET /api/equipment-categories",
		"GET /api/equipment",
		"GET /api/equipment/available",
		"GET /api/repair-requests",
		"GET /api/repair-requests/my",
		"GET /api/repair-requests/assigned-to-me",
		"POST /api/repair-requests",
		"PATCH /api/repair-requests/:id",
		"POST /api/repair-requests/:id/assign",
		"POST /api/repair-requests/:id/update-status",
		"GET /api/repair-requests/:id/history",
		"GET /api/dashboard/stats",
		"GET /api/reports/repair-requests",
	} {
		assert.True(t, registered[want], "route %s is not registered", want)
	}
}
