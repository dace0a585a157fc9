package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/project-review/internal/model"
)

func TestInsightsUsecase_EnrichStoresSummaryAndEmbedding(t *testing.T) {
	f := newFixture(t)
	owner := f.signedIn(t, "owner@example.com")
	p := f.project(t, owner, SubmitInput{Description: clearTechnical})

	summarizer := &mockSummarizer{}
	summarizer.On("Summarize", mock.Anything, clearTechnical).Return("  A documented architecture. ", nil)
	embedder := &mockEmbedder{}
	embedder.On("Embed", mock.Anything, clearTechnical).Return([]float32{0.1, 0.2}, nil)
	embeddings := &mockEmbeddings{}
	embeddings.On("Save", mock.Anything, mock.MatchedBy(func(e *model.ProjectEmbedding) bool {
		return e.ProjectID == p.ID && len(e.Embedding.Slice()) == 2
	})).Return(nil)

	uc := NewInsightsUsecase(f.projects, embeddings, summarizer, embedder, f.log)
	require.NoError(t, uc.Enrich(context.Background(), p.ID, clearTechnical))

	stored, err := f.projects.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A documented architecture.", stored.AISummary)
	assert.Equal(t, p.Score(), stored.Score())
	summarizer.AssertExpectations(t)
	embedder.AssertExpectations(t)
	embeddings.AssertExpectations(t)
}

func TestInsightsUsecase_SummaryFailureStillEmbeds(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	summarizer := &mockSummarizer{}
	summarizer.On("Summarize", mock.Anything, "text").Return("", errors.New("quota"))
	embedder := &mockEmbedder{}
	embedder.On("Embed", mock.Anything, "text").Return([]float32{1}, nil)
	embeddings := &mockEmbeddings{}
	embeddings.On("Save", mock.Anything, mock.Anything).Return(nil)

	uc := NewInsightsUsecase(f.projects, embeddings, summarizer, embedder, f.log)
	err := uc.Enrich(context.Background(), id, "text")

	assert.ErrorContains(t, err, "quota")
	embeddings.AssertCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInsightsUsecase_EmptyTextIsNoop(t *testing.T) {
	f := newFixture(t)
	summarizer := &mockSummarizer{}
	uc := NewInsightsUsecase(f.projects, nil, summarizer, nil, f.log)

	require.NoError(t, uc.Enrich(context.Background(), uuid.New(), " \n"))
	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestInsightsUsecase_Similar(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	embeddings := &mockEmbeddings{}
	embeddings.On("Similar", mock.Anything, id, maxSimilar).Return([]model.Project{{Title: "near"}}, nil)
	embeddings.On("Similar", mock.Anything, id, defaultSimilar).Return([]model.Project{}, nil)

	uc := NewInsightsUsecase(f.projects, embeddings, nil, &mockEmbedder{}, f.log)

	got, err := uc.Similar(context.Background(), id, 100)
	require.NoError(t, err)
	assert.Equal(t, "near", got[0].Title)

	_, err = uc.Similar(context.Background(), id, 0)
	require.NoError(t, err)

	_, err = NewInsightsUsecase(f.projects, nil, &mockSummarizer{}, nil, f.log).Similar(context.Background(), id, 5)
	assert.ErrorIs(t, err, ErrInsightsDisabled)
}

func TestProjectUsecase_SubmitTriggersInsights(t *testing.T) {
	f := newFixture(t)
	owner := f.signedIn(t, "owner@example.com")

	summarizer := &mockSummarizer{}
	summarizer.On("Summarize", mock.Anything, clearTechnical).Return("summary", nil)
	embeddings := &mockEmbeddings{}
	embeddings.On("Delete", mock.Anything, mock.Anything).Return(nil)
	insights := NewInsightsUsecase(f.projects, embeddings, summarizer, nil, f.log)
	uc := f.projectUsecase().WithInsights(insights)

	p, err := uc.Submit(context.Background(), owner, SubmitInput{Title: "AI", Description: clearTechnical})
	require.NoError(t, err)
	uc.Wait()

	stored, err := f.projects.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "summary", stored.AISummary)

	_, err = uc.Similar(context.Background(), p.ID, 3)
	assert.ErrorIs(t, err, ErrInsightsDisabled)

	require.NoError(t, uc.Delete(context.Background(), owner, p.ID))
	embeddings.AssertCalled(t, "Delete", mock.Anything, p.ID)
}
