package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/dto"
	"github.com/fadilmartias/project-review/internal/middleware"
	"github.com/fadilmartias/project-review/internal/usecase"
	"github.com/fadilmartias/project-review/internal/util"
	"github.com/fadilmartias/project-review/internal/validation"
)

type ReviewHandler struct {
	uc  *usecase.ReviewUsecase
	log *zap.Logger
}

func NewReviewHandler(uc *usecase.ReviewUsecase, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, log: log}
}

func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/projects/:id/reviews", h.List)
	router.Post("/projects/:id/reviews", middleware.RequireAuth(), h.Create)
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid project id", err)
	}
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := validation.Struct(req); err != nil {
		return respondError(c, h.log, err)
	}

	review, err := h.uc.Create(c.UserContext(), middleware.RequestContext(c), projectID, usecase.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create review",
		Data:    dto.NewReviewDTO(*review),
	})
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid project id", err)
	}
	reviews, err := h.uc.ListForProject(c.UserContext(), projectID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get reviews",
		Data:    dto.NewReviewDTOs(reviews),
	})
}
