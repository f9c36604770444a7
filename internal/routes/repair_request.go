package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/services"
)

func runRepairRequestRouter(secure *echo.Group, requestService services.RepairRequestServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewRepairRequestController(requestService, logger)

	secure.GET("/repair-requests", ctrl.List)
	secure.GET("/repair-requests/my", ctrl.ListMine)
	secure.GET("/repair-requests/assigned-to-me", ctrl.ListAssignedToMe)
	secure.GET("/repair-requests/:id", ctrl.Find)
	secure.POST("/repair-requests", ctrl.Create)
	secure.PATCH("/repair-requests/:id", ctrl.Update)
	secure.POST("/repair-requests/:id/assign", ctrl.Assign)
	secure.POST("/repair-requests/:id/update-status", ctrl.UpdateStatus)
	secure.GET("/repair-requests/:id/history", ctrl.ListHistory)
}
