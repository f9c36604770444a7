package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/services"
	"repair-system/pkg/utils"
)

type EquipmentCategoryController struct {
	categoryService services.EquipmentCategoryServiceInterface
	logger          *zap.Logger
}

func NewEquipmentCategoryController(categoryService services.EquipmentCategoryServiceInterface, logger *zap.Logger) *EquipmentCategoryController {
	return &EquipmentCategoryController{
		categoryService: categoryService,
		logger:          logger,
	}
}

func (c *EquipmentCategoryController) List(ctx echo.Context) error {
	res, err := c.categoryService.List(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Categories retrieved", http.StatusOK)
}

func (c *EquipmentCategoryController) Find(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.categoryService.Find(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Category retrieved", http.StatusOK)
}

func (c *EquipmentCategoryController) Create(ctx echo.Context) error {
	var payload dto.CreateEquipmentCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.categoryService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Category created", http.StatusCreated)
}

func (c *EquipmentCategoryController) Update(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateEquipmentCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.categoryService.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Category updated", http.StatusOK)
}

func (c *EquipmentCategoryController) Delete(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.categoryService.Delete(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, nil, "Category deleted", http.StatusOK)
}
