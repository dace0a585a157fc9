package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fadilmartias/project-review/internal/model"
)

type EmbeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db}
}

func (r *EmbeddingRepository) Save(ctx context.Context, e *model.ProjectEmbedding) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(e).Error
}

// Similar orders other projects by L2 distance to the project's embedding.
// A project without an embedding has no neighbours.
func (r *EmbeddingRepository) Similar(ctx context.Context, projectID uuid.UUID, topK int) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).Raw(`
        WITH target AS (
            SELECT embedding FROM project_embeddings WHERE project_id = ?
        )
        SELECT p.*
        FROM projects p
        JOIN project_embeddings e ON e.project_id = p.id
        CROSS JOIN target t
        WHERE p.id <> ?
        ORDER BY e.embedding <-> t.embedding
        LIMIT ?
    `, projectID, projectID, topK).Scan(&projects).Error
	return projects, err
}

func (r *EmbeddingRepository) Delete(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProjectEmbedding{}, "project_id = ?", projectID).Error
}
