package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadilmartias/project-review/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return translate(r.db.WithContext(ctx).Create(project).Error)
}

// Update writes every column of an existing project. A missing row is
// ErrNotFound, never an insert.
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	res := r.db.WithContext(ctx).
		Model(project).
		Select("*").
		Omit("id", "created_at").
		Updates(project)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSummary touches only ai_summary so a background writer cannot
// clobber scores written by a concurrent rescore.
func (r *ProjectRepository) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Update("ai_summary", summary)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// List returns one page of projects and the total matching the filter.
func (r *ProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]model.Project, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.OwnerID != nil {
			return db.Where("owner_id = ?", *filter.OwnerID)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Project{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Scopes(scope).Order(filter.order())
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var projects []model.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Delete removes the project together with its reviews.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
