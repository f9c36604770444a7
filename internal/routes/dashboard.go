package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runDashboardRouter(secure *echo.Group, dashboardService services.DashboardServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewDashboardController(dashboardService, logger)

	secure.GET("/dashboard/stats", ctrl.Stats)
}
