package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runEquipmentRouter(secure *echo.Group, equipmentService services.EquipmentServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewEquipmentController(equipmentService, logger)

	secure.GET("/equipment", ctrl.List)
	secure.GET("/equipment/available", ctrl.ListAvailable)
	secure.GET("/equipment/:id", ctrl.Find)
	secure.POST("/equipment", ctrl.Create)
	secure.PUT("/equipment/:id", ctrl.Update)
	secure.DELETE("/equipment/:id", ctrl.Delete)
}
