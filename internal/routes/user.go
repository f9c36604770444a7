package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runUserRouter(secure *echo.Group, userService services.UserServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewUserController(userService, logger)

	secure.GET("/profiles/me", ctrl.MyProfile)
	secure.PATCH("/profiles/me", ctrl.UpdateMyProfile)
	secure.GET("/users/technicians", ctrl.ListTechnicians)
}
