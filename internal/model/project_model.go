package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadilmartias/project-review/internal/scoring"
)

const (
	ProjectStatusDraft  = "draft"
	ProjectStatusScored = "scored"

	// ExtractionNone marks a project submitted without a file. The other
	// extraction statuses are extract.Kind names.
	ExtractionNone = "none"
)

type Project struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID           uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Title             string    `gorm:"type:varchar(200)" json:"title"`
	Description       string    `gorm:"type:text" json:"description"`
	FilePath          string    `gorm:"type:text" json:"-"`
	FileName          string    `gorm:"type:varchar(255)" json:"file_name"`
	Status            string    `gorm:"type:varchar(20)" json:"status"`
	ExtractionStatus  string    `gorm:"type:varchar(20)" json:"extraction_status"`
	ClarityScore      int       `json:"clarity_score"`
	CreativityScore   int       `json:"creativity_score"`
	TechnicalityScore int       `json:"technicality_score"`
	OverallScore      float64   `gorm:"type:float;index" json:"overall_score"`
	Feedback          string    `gorm:"type:text" json:"feedback"`
	AISummary         string    `gorm:"type:text" json:"ai_summary"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ApplyScore copies a scoring result onto the project and marks it scored.
func (p *Project) ApplyScore(r scoring.Result) {
	p.ClarityScore = r.ClarityScore
	p.CreativityScore = r.CreativityScore
	p.TechnicalityScore = r.TechnicalityScore
	p.OverallScore = r.OverallScore
	p.Feedback = r.Feedback
	p.Status = ProjectStatusScored
}

// Score returns the persisted scoring result.
func (p *Project) Score() scoring.Result {
	return scoring.Result{
		ClarityScore:      p.ClarityScore,
		CreativityScore:   p.CreativityScore,
		TechnicalityScore: p.TechnicalityScore,
		OverallScore:      p.OverallScore,
		Feedback:          p.Feedback,
	}
}
