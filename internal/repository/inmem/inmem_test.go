package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/project-review/internal/model"
	"github.com/fadilmartias/project-review/internal/repository"
)

func TestUserRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(Open())

	require.NoError(t, repo.Create(ctx, &model.User{Email: "a@example.com"}))
	err := repo.Create(ctx, &model.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	u, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = repo.FindByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_ListSortAndPage(t *testing.T) {
	ctx := context.Background()
	db := Open()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	owner := uuid.New()
	repo := NewProjectRepository(db)

	scores := []float64{2.0, 4.3, 3.0}
	for i, s := range scores {
		p := &model.Project{OwnerID: owner, OverallScore: s, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.Create(ctx, p))
	}
	require.NoError(t, repo.Create(ctx, &model.Project{OwnerID: uuid.New(), OverallScore: 5, CreatedAt: base}))

	byScore, total, err := repo.List(ctx, repository.ProjectFilter{OwnerID: &owner, Sort: repository.SortScore})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, byScore, 3)
	assert.Equal(t, []float64{4.3, 3.0, 2.0}, []float64{byScore[0].OverallScore, byScore[1].OverallScore, byScore[2].OverallScore})

	recent, total, err := repo.List(ctx, repository.ProjectFilter{Offset: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, recent, 2)
	assert.Equal(t, 4.3, recent[0].OverallScore)

	empty, _, err := repo.List(ctx, repository.ProjectFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReviewRepository_StatsAndDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository(Open())
	project, other := uuid.New(), uuid.New()

	require.NoError(t, repo.Create(ctx, &model.Review{ProjectID: project, ReviewerID: uuid.New(), Rating: 5}))
	require.NoError(t, repo.Create(ctx, &model.Review{ProjectID: project, ReviewerID: uuid.New(), Rating: 2}))
	reviewer := uuid.New()
	require.NoError(t, repo.Create(ctx, &model.Review{ProjectID: other, ReviewerID: reviewer, Rating: 4}))
	assert.ErrorIs(t, repo.Create(ctx, &model.Review{ProjectID: other, ReviewerID: reviewer, Rating: 1}), repository.ErrDuplicate)

	stats, err := repo.Stats(ctx, project)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(2), stats[project].Count)
	assert.Equal(t, 3.5, stats[project].Average)

	exists, err := repo.Exists(ctx, other, reviewer)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProjectRepository_DeleteRemovesReviews(t *testing.T) {
	ctx := context.Background()
	db := Open()
	projects, reviews := NewProjectRepository(db), NewReviewRepository(db)
	p := &model.Project{Title: "Bike planner"}
	require.NoError(t, projects.Create(ctx, p))
	require.NoError(t, reviews.Create(ctx, &model.Review{ProjectID: p.ID, ReviewerID: uuid.New(), Rating: 4}))
	other := uuid.New()
	require.NoError(t, reviews.Create(ctx, &model.Review{ProjectID: other, ReviewerID: uuid.New(), Rating: 2}))

	require.NoError(t, projects.Delete(ctx, p.ID))

	left, err := reviews.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
	kept, err := reviews.ListByProject(ctx, other)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
	assert.ErrorIs(t, projects.Delete(ctx, p.ID), repository.ErrNotFound)
}

func TestProjectRepository_UpdateMissing(t *testing.T) {
	repo := NewProjectRepository(Open())
	err := repo.Update(context.Background(), &model.Project{ID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
