package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/services"
	"repair-system/pkg/utils"
)

type RepairRequestController struct {
	requestService services.RepairRequestServiceInterface
	logger         *zap.Logger
}

func NewRepairRequestController(requestService services.RepairRequestServiceInterface, logger *zap.Logger) *RepairRequestController {
	return &RepairRequestController{
		requestService: requestService,
		logger:         logger,
	}
}

func (c *RepairRequestController) List(ctx echo.Context) error {
	filter := utils.ParseRequestFilter(ctx.Request().URL.Query())

	res, total, err := c.requestService.List(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Repair requests retrieved", http.StatusOK, total)
}

func (c *RepairRequestController) ListMine(ctx echo.Context) error {
	filter := utils.ParseRequestFilter(ctx.Request().URL.Query())

	res, total, err := c.requestService.ListMine(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "My repair requests retrieved", http.StatusOK, total)
}

func (c *RepairRequestController) ListAssignedToMe(ctx echo.Context) error {
	filter := utils.ParseRequestFilter(ctx.Request().URL.Query())

	res, total, err := c.requestService.ListAssignedToMe(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Assigned repair requests retrieved", http.StatusOK, total)
}

func (c *RepairRequestController) Find(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.Find(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Repair request retrieved", http.StatusOK)
}

func (c *RepairRequestController) Create(ctx echo.Context) error {
	var payload dto.CreateRepairRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("repair request creation failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Repair request created", http.StatusCreated)
}

func (c *RepairRequestController) Assign(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.AssignRepairRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.Assign(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Repair request assigned", http.StatusOK)
}

func (c *RepairRequestController) UpdateStatus(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.UpdateStatus(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Status updated", http.StatusOK)
}

func (c *RepairRequestController) Update(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateRepairRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Repair request updated", http.StatusOK)
}

func (c *RepairRequestController) ListHistory(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.ListHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "History retrieved", http.StatusOK)
}
