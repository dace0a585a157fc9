package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/dto"
	"github.com/fadilmartias/project-review/internal/middleware"
	"github.com/fadilmartias/project-review/internal/usecase"
	"github.com/fadilmartias/project-review/internal/util"
	"github.com/fadilmartias/project-review/internal/validation"
)

type AuthHandler struct {
	uc           *usecase.UserUsecase
	cookieName   string
	secureCookie bool
	log          *zap.Logger
}

func NewAuthHandler(uc *usecase.UserUsecase, cookieName string, secureCookie bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName, secureCookie: secureCookie, log: log}
}

func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	g := router.Group("/auth")
	g.Post("/signup", middleware.RateLimiter(10, time.Minute), h.SignUp)
	g.Post("/login", middleware.RateLimiter(10, time.Minute), h.LogIn)
	g.Post("/logout", middleware.RequireAuth(), h.LogOut)
	g.Get("/me", middleware.RequireAuth(), h.Me)
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := validation.Struct(req); err != nil {
		return respondError(c, h.log, err)
	}

	user, err := h.uc.SignUp(c.UserContext(), usecase.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success sign up",
		Data:    dto.NewUserDTO(*user),
	})
}

func (h *AuthHandler) LogIn(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := validation.Struct(req); err != nil {
		return respondError(c, h.log, err)
	}

	res, err := h.uc.LogIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if h.cookieName != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookieName,
			Value:    res.Token,
			Expires:  res.Identity.ExpiresAt,
			HTTPOnly: true,
			Secure:   h.secureCookie,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success log in",
		Data: dto.LoginDTO{
			Token:     res.Token,
			ExpiresAt: res.Identity.ExpiresAt,
			User:      dto.NewUserDTO(*res.User),
		},
	})
}

func (h *AuthHandler) LogOut(c *fiber.Ctx) error {
	if err := h.uc.LogOut(c.UserContext(), middleware.RequestContext(c)); err != nil {
		return respondError(c, h.log, err)
	}
	if h.cookieName != "" {
		c.ClearCookie(h.cookieName)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Success log out"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), middleware.RequestContext(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get current user",
		Data:    dto.NewUserDTO(*user),
	})
}
