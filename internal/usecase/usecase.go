package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fadilmartias/project-review/internal/auth"
	"github.com/fadilmartias/project-review/internal/extract"
	"github.com/fadilmartias/project-review/internal/model"
	"github.com/fadilmartias/project-review/internal/repository"
	"github.com/fadilmartias/project-review/internal/scoring"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("not allowed")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrSelfReview         = errors.New("cannot review your own project")
	ErrDuplicateReview    = errors.New("project already reviewed by this user")
	ErrInsightsDisabled   = errors.New("insights are not enabled")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, int64, error)
	// Delete removes the project and its reviews.
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Exists(ctx context.Context, projectID, reviewerID uuid.UUID) (bool, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Review, error)
	Stats(ctx context.Context, projectIDs ...uuid.UUID) (map[uuid.UUID]model.ReviewStats, error)
}

type EmbeddingRepository interface {
	Save(ctx context.Context, e *model.ProjectEmbedding) error
	Similar(ctx context.Context, projectID uuid.UUID, topK int) ([]model.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

type Extractor interface {
	Extract(path string) extract.Result
}

type Scorer interface {
	Score(text string) scoring.Result
}

type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, auth.Identity, error)
}

// Summarizer and Embedder are the optional AI providers.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

func requireUser(rc auth.RequestContext) (uuid.UUID, error) {
	id, ok := rc.UserID()
	if !ok {
		return uuid.Nil, ErrUnauthenticated
	}
	return id, nil
}
