package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runEquipmentCategoryRouter(secure *echo.Group, categoryService services.EquipmentCategoryServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewEquipmentCategoryController(categoryService, logger)

	secure.GET("/equipment-categories", ctrl.List)
	secure.GET("/equipment-categories/:id", ctrl.Find)
	secure.POST("/equipment-categories", ctrl.Create)
	secure.PUT("/equipment-categories/:id", ctrl.Update)
	secure.DELETE("/equipment-categories/:id", ctrl.Delete)
}
