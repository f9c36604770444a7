package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/services"
	"repair-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// RepairRequests returns the scoped request list as JSON, or as an xlsx
// download when format=xlsx is passed.
func (c *ReportController) RepairRequests(ctx echo.Context) error {
	filter := utils.ParseRequestFilter(ctx.Request().URL.Query())
	format := strings.ToLower(ctx.QueryParam("format"))

	data, err := c.reportService.RepairRequestsReport(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if format == "xlsx" {
		f := services.BuildRequestsWorkbook(data)
		fileName := fmt.Sprintf("repair_requests_%s.xlsx", time.Now().Format("2006-01-02"))
		ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
		ctx.Response().WriteHeader(http.StatusOK)
		return f.Write(ctx.Response().Writer)
	}

	return utils.SuccessResponse(ctx, data, "Report generated", http.StatusOK)
}
