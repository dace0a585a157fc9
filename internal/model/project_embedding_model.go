package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ProjectEmbedding is only migrated when insights are enabled, since it
// needs the pgvector extension.
type ProjectEmbedding struct {
	ProjectID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"project_id"`
	Embedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (e *ProjectEmbedding) TableName() string {
	return "project_embeddings"
}
