package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/fadilmartias/project-review/internal/auth"
	"github.com/fadilmartias/project-review/internal/extract"
	"github.com/fadilmartias/project-review/internal/model"
	"github.com/fadilmartias/project-review/internal/repository/inmem"
	"github.com/fadilmartias/project-review/internal/scoring"
)

type fixture struct {
	db          *inmem.DB
	users       *inmem.UserRepository
	projects    *inmem.ProjectRepository
	reviews     *inmem.ReviewRepository
	tokens      *auth.TokenManager
	revocations *auth.MemoryRevocationStore
	log         *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := inmem.Open()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour, "test")
	require.NoError(t, err)
	return &fixture{
		db:          db,
		users:       inmem.NewUserRepository(db),
		projects:    inmem.NewProjectRepository(db),
		reviews:     inmem.NewReviewRepository(db),
		tokens:      tokens,
		revocations: auth.NewMemoryRevocationStore(),
		log:         zaptest.NewLogger(t),
	}
}

func (f *fixture) userUsecase() *UserUsecase {
	return NewUserUsecase(f.users, f.tokens, f.revocations, f.log)
}

func (f *fixture) projectUsecase() *ProjectUsecase {
	return NewProjectUsecase(f.projects, f.reviews, extract.New(0), scoring.Heuristic{}, f.log)
}

func (f *fixture) reviewUsecase() *ReviewUsecase {
	return NewReviewUsecase(f.reviews, f.projects, f.log)
}

// signedIn creates a user and returns a request context for them.
func (f *fixture) signedIn(t *testing.T, email string) auth.RequestContext {
	t.Helper()
	u := &model.User{Name: email, Email: email}
	require.NoError(t, f.users.Create(context.Background(), u))
	_, id, err := f.tokens.Issue(u.ID, u.Email)
	require.NoError(t, err)
	return auth.For(id)
}

func (f *fixture) project(t *testing.T, owner auth.RequestContext, in SubmitInput) *model.Project {
	t.Helper()
	if in.Title == "" {
		in.Title = "Project " + uuid.NewString()[:8]
	}
	p, err := f.projectUsecase().Submit(context.Background(), owner, in)
	require.NoError(t, err)
	return p
}

func writeUpload(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type mockSummarizer struct{ mock.Mock }

func (m *mockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type mockEmbedder struct{ mock.Mock }

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	vec, _ := args.Get(0).([]float32)
	return vec, args.Error(1)
}

type mockEmbeddings struct{ mock.Mock }

func (m *mockEmbeddings) Save(ctx context.Context, e *model.ProjectEmbedding) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEmbeddings) Similar(ctx context.Context, projectID uuid.UUID, topK int) ([]model.Project, error) {
	args := m.Called(ctx, projectID, topK)
	projects, _ := args.Get(0).([]model.Project)
	return projects, args.Error(1)
}

func (m *mockEmbeddings) Delete(ctx context.Context, projectID uuid.UUID) error {
	return m.Called(ctx, projectID).Error(0)
}
