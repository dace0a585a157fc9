package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/fadilmartias/project-review/internal/model"
	"github.com/fadilmartias/project-review/internal/repository"
)

type ReviewRepository struct {
	db *DB
}

func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(_ context.Context, review *model.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.reviews {
		if existing.ProjectID == review.ProjectID && existing.ReviewerID == review.ReviewerID {
			return repository.ErrDuplicate
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	r.db.stamp(&review.CreatedAt, nil)
	r.db.reviews[review.ID] = *review
	return nil
}

func (r *ReviewRepository) Exists(_ context.Context, projectID, reviewerID uuid.UUID) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, existing := range r.db.reviews {
		if existing.ProjectID == projectID && existing.ReviewerID == reviewerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReviewRepository) ListByProject(_ context.Context, projectID uuid.UUID) ([]model.Review, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	reviews := []model.Review{}
	for _, rv := range r.db.reviews {
		if rv.ProjectID == projectID {
			reviews = append(reviews, rv)
		}
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID.String() < reviews[j].ID.String()
	})
	return reviews, nil
}

func (r *ReviewRepository) Stats(_ context.Context, projectIDs ...uuid.UUID) (map[uuid.UUID]model.ReviewStats, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	wanted := make(map[uuid.UUID]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		wanted[id] = struct{}{}
	}
	sums := make(map[uuid.UUID]int)
	out := make(map[uuid.UUID]model.ReviewStats)
	for _, rv := range r.db.reviews {
		if _, ok := wanted[rv.ProjectID]; !ok {
			continue
		}
		s := out[rv.ProjectID]
		s.ProjectID = rv.ProjectID
		s.Count++
		sums[rv.ProjectID] += rv.Rating
		out[rv.ProjectID] = s
	}
	for id, s := range out {
		s.Average = float64(sums[id]) / float64(s.Count)
		out[id] = s
	}
	return out, nil
}

