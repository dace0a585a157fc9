package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/fadilmartias/project-review/internal/model"
	"github.com/fadilmartias/project-review/internal/repository"
)

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(_ context.Context, project *model.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if _, exists := r.db.projects[project.ID]; exists {
		return repository.ErrDuplicate
	}
	r.db.stamp(&project.CreatedAt, &project.UpdatedAt)
	r.db.projects[project.ID] = *project
	return nil
}

func (r *ProjectRepository) Update(_ context.Context, project *model.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.projects[project.ID]; !exists {
		return repository.ErrNotFound
	}
	r.db.stamp(&project.CreatedAt, &project.UpdatedAt)
	r.db.projects[project.ID] = *project
	return nil
}

func (r *ProjectRepository) UpdateSummary(_ context.Context, id uuid.UUID, summary string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.projects[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.AISummary = summary
	r.db.stamp(nil, &p.UpdatedAt)
	r.db.projects[id] = p
	return nil
}

func (r *ProjectRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *ProjectRepository) List(_ context.Context, filter repository.ProjectFilter) ([]model.Project, int64, error) {
	r.db.mu.RLock()
	matched := make([]model.Project, 0, len(r.db.projects))
	for _, p := range r.db.projects {
		if filter.OwnerID != nil && p.OwnerID != *filter.OwnerID {
			continue
		}
		matched = append(matched, p)
	}
	r.db.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if filter.Sort == repository.SortScore && a.OverallScore != b.OverallScore {
			return a.OverallScore > b.OverallScore
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []model.Project{}, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *ProjectRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.projects, id)
	for rid, rv := range r.db.reviews {
		if rv.ProjectID == id {
			delete(r.db.reviews, rid)
		}
	}
	return nil
}
