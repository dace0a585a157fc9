package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadilmartias/project-review/internal/model"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return translate(r.db.WithContext(ctx).Create(review).Error)
}

func (r *ReviewRepository) Exists(ctx context.Context, projectID, reviewerID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("project_id = ? AND reviewer_id = ?", projectID, reviewerID).
		Count(&n).Error
	return n > 0, err
}

func (r *ReviewRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// Stats returns review aggregates keyed by project. Projects without
// reviews are absent from the map.
func (r *ReviewRepository) Stats(ctx context.Context, projectIDs ...uuid.UUID) (map[uuid.UUID]model.ReviewStats, error) {
	out := make(map[uuid.UUID]model.ReviewStats, len(projectIDs))
	if len(projectIDs) == 0 {
		return out, nil
	}
	var rows []model.ReviewStats
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("project_id, COUNT(*) AS count, AVG(rating) AS average").
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProjectID] = row
	}
	return out, nil
}
