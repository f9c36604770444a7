package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runAuthRouter(api *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewAuthController(authService, logger)

	auth := api.Group("/auth")
	auth.POST("/register", ctrl.Register)
	auth.POST("/login", ctrl.Login)
	auth.POST("/refresh", ctrl.Refresh)
}
