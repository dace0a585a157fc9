package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_project_reviewer" json:"project_id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_project_reviewer" json:"reviewer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ReviewStats aggregates the reviews of one project.
type ReviewStats struct {
	ProjectID uuid.UUID
	Count     int64
	Average   float64
}
