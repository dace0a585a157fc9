package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/auth"
	"github.com/fadilmartias/project-review/internal/metrics"
	"github.com/fadilmartias/project-review/internal/model"
	"github.com/fadilmartias/project-review/internal/repository"
)

type ReviewInput struct {
	Rating  int
	Comment string
}

type ReviewUsecase struct {
	reviews  ReviewRepository
	projects ProjectRepository
	log      *zap.Logger
}

func NewReviewUsecase(reviews ReviewRepository, projects ProjectRepository, log *zap.Logger) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews, projects: projects, log: log}
}

// Create records the caller's review. Owners cannot review their own
// project and each user reviews a project at most once.
func (uc *ReviewUsecase) Create(ctx context.Context, rc auth.RequestContext, projectID uuid.UUID, in ReviewInput) (*model.Review, error) {
	reviewerID, err := requireUser(rc)
	if err != nil {
		return nil, err
	}
	if in.Rating < model.MinRating || in.Rating > model.MaxRating {
		return nil, ErrInvalidRating
	}

	project, err := uc.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if project.OwnerID == reviewerID {
		return nil, ErrSelfReview
	}

	exists, err := uc.reviews.Exists(ctx, projectID, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("check review: %w", err)
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review := &model.Review{
		ProjectID:  projectID,
		ReviewerID: reviewerID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := uc.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	metrics.ReviewsCreated.Inc()
	uc.log.Info("review created",
		zap.String("project_id", projectID.String()),
		zap.String("reviewer_id", reviewerID.String()),
		zap.Int("rating", in.Rating),
	)
	return review, nil
}

func (uc *ReviewUsecase) ListForProject(ctx context.Context, projectID uuid.UUID) ([]model.Review, error) {
	if _, err := uc.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return uc.reviews.ListByProject(ctx, projectID)
}
