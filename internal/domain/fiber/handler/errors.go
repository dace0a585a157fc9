package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/usecase"
	"github.com/fadilmartias/project-review/internal/util"
)

// respondError maps usecase errors to HTTP statuses. Anything unknown is a
// 500 and gets logged.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	code := fiber.StatusInternalServerError
	var formErr *util.FormError
	switch {
	case errors.As(err, &formErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: formErr.Message,
		}, err)
	case errors.Is(err, usecase.ErrUnauthenticated),
		errors.Is(err, usecase.ErrInvalidCredentials):
		code = fiber.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, usecase.ErrSelfReview):
		code = fiber.StatusForbidden
	case errors.Is(err, usecase.ErrProjectNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrDuplicateReview):
		code = fiber.StatusConflict
	case errors.Is(err, usecase.ErrWeakPassword),
		errors.Is(err, usecase.ErrTitleRequired),
		errors.Is(err, usecase.ErrInvalidRating):
		code = fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrInsightsDisabled):
		code = fiber.StatusNotImplemented
	}

	message := err.Error()
	if code == fiber.StatusInternalServerError {
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		message = "internal server error"
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: message,
	}, err)
}
