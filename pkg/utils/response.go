package utils

import (
	"errors"

	"github.com/labstack/echo/v4"

	apperrors "repair-system/pkg/errors"
)

type HttpResponse struct {
	Status     bool        `json:"status"`
	Body       interface{} `json:"body,omitempty"`
	Message    string      `json:"message"`
	TotalCount *uint64     `json:"total_count,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, totalCount ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(totalCount) > 0 {
		response.TotalCount = &totalCount[0]
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(ctx echo.Context, err error) error {
	code := apperrors.HttpStatus(err)
	// Echo's binder reports malformed bodies as *echo.HTTPError.
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		code = echoErr.Code
	}
	response := &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: err.Error(),
	}
	return ctx.JSON(code, response)
}
