package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fadilmartias/project-review/internal/model"
)

type ProjectDTO struct {
	ID                uuid.UUID `json:"id"`
	OwnerID           uuid.UUID `json:"owner_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	FileName          string    `json:"file_name,omitempty"`
	Status            string    `json:"status"`
	ExtractionStatus  string    `json:"extraction_status"`
	ClarityScore      int       `json:"clarity_score"`
	CreativityScore   int       `json:"creativity_score"`
	TechnicalityScore int       `json:"technicality_score"`
	OverallScore      float64   `json:"overall_score"`
	Feedback          string    `json:"feedback"`
	AISummary         string    `json:"ai_summary,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ProjectDetailDTO struct {
	ProjectDTO
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

func NewProjectDTO(p model.Project) ProjectDTO {
	return ProjectDTO{
		ID:                p.ID,
		OwnerID:           p.OwnerID,
		Title:             p.Title,
		Description:       p.Description,
		FileName:          p.FileName,
		Status:            p.Status,
		ExtractionStatus:  p.ExtractionStatus,
		ClarityScore:      p.ClarityScore,
		CreativityScore:   p.CreativityScore,
		TechnicalityScore: p.TechnicalityScore,
		OverallScore:      p.OverallScore,
		Feedback:          p.Feedback,
		AISummary:         p.AISummary,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func NewProjectDTOs(projects []model.Project) []ProjectDTO {
	out := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, NewProjectDTO(p))
	}
	return out
}

type SubmitProjectRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Description string `json:"description" form:"description" validate:"max=20000"`
}

func NewProjectDetailDTO(p model.Project, reviewCount int64, averageRating float64) ProjectDetailDTO {
	return ProjectDetailDTO{
		ProjectDTO:    NewProjectDTO(p),
		ReviewCount:   reviewCount,
		AverageRating: averageRating,
	}
}
