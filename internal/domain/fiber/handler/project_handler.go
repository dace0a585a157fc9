package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/dto"
	"github.com/fadilmartias/project-review/internal/export"
	"github.com/fadilmartias/project-review/internal/middleware"
	"github.com/fadilmartias/project-review/internal/usecase"
	"github.com/fadilmartias/project-review/internal/util"
	"github.com/fadilmartias/project-review/internal/validation"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProjectHandler struct {
	uc        *usecase.ProjectUsecase
	exporter  *export.Service
	uploadDir string
	maxUpload int64
	log       *zap.Logger
}

func NewProjectHandler(uc *usecase.ProjectUsecase, exporter *export.Service, uploadDir string, maxUpload int64, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{uc: uc, exporter: exporter, uploadDir: uploadDir, maxUpload: maxUpload, log: log}
}

func (h *ProjectHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/score/preview", h.Preview)

	g := router.Group("/projects")
	g.Get("/", h.List)
	g.Post("/", middleware.RequireAuth(), middleware.RateLimiter(5, 10*time.Second), h.Submit)
	g.Get("/export.xlsx", h.Export)
	g.Get("/:id", h.Get)
	g.Delete("/:id", middleware.RequireAuth(), h.Delete)
	g.Post("/:id/rescore", middleware.RequireAuth(), h.Rescore)
	g.Get("/:id/similar", h.Similar)
}

func (h *ProjectHandler) Preview(c *fiber.Ctx) error {
	var req dto.ScorePreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := validation.Struct(req); err != nil {
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success score text",
		Data:    h.uc.Preview(req.Text),
	})
}

func (h *ProjectHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := validation.Struct(req); err != nil {
		return respondError(c, h.log, err)
	}

	in := usecase.SubmitInput{Title: req.Title, Description: req.Description}
	if file := h.uploadedFile(c); file != nil {
		if file.Size > h.maxUpload {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusRequestEntityTooLarge,
				Message: fmt.Sprintf("file is too large (max %d bytes)", h.maxUpload),
			})
		}
		path, err := h.saveUpload(c, file)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot save file"}, err)
		}
		in.FilePath = path
		in.FileName = filepath.Base(file.Filename)
	}

	project, err := h.uc.Submit(c.UserContext(), middleware.RequestContext(c), in)
	if err != nil {
		if in.FilePath != "" {
			_ = os.Remove(in.FilePath)
		}
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success submit project",
		Data:    dto.NewProjectDTO(*project),
	})
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	filter := usecase.ListFilter{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
		Sort:     c.Query("sort"),
	}
	switch owner := c.Query("owner"); owner {
	case "":
	case "me":
		id, ok := middleware.RequestContext(c).UserID()
		if !ok {
			return respondError(c, h.log, usecase.ErrUnauthenticated)
		}
		filter.OwnerID = &id
	default:
		id, err := uuid.Parse(owner)
		if err != nil {
			return badRequest(c, "invalid owner id", err)
		}
		filter.OwnerID = &id
	}

	projects, page, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get projects",
		Data:       dto.NewProjectDTOs(projects),
		Pagination: page,
	})
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid project id", err)
	}
	detail, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get project",
		Data:    dto.NewProjectDetailDTO(detail.Project, detail.ReviewCount, detail.AverageRating),
	})
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid project id", err)
	}
	if err := h.uc.Delete(c.UserContext(), middleware.RequestContext(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Success delete project"})
}

func (h *ProjectHandler) Rescore(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid project id", err)
	}
	project, err := h.uc.Rescore(c.UserContext(), middleware.RequestContext(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success rescore project",
		Data:    dto.NewProjectDTO(*project),
	})
}

func (h *ProjectHandler) Similar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid project id", err)
	}
	projects, err := h.uc.Similar(c.UserContext(), id, c.QueryInt("k", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get similar projects",
		Data:    dto.NewProjectDTOs(projects),
	})
}

func (h *ProjectHandler) Export(c *fiber.Ctx) error {
	data, err := h.exporter.LeaderboardXLSX(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Attachment("leaderboard.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(data)
}

func (h *ProjectHandler) uploadedFile(c *fiber.Ctx) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	files := form.File["file"]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// saveUpload stores the file under a generated name; the client filename is
// never used as a path.
func (h *ProjectHandler) saveUpload(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(h.uploadDir, name)
	if err := c.SaveFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}
