package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/metrics"
	"github.com/fadilmartias/project-review/internal/model"
)

const (
	defaultSimilar = 5
	maxSimilar     = 20
)

// InsightsUsecase adds AI summaries and embeddings to scored projects. It
// never changes scores.
type InsightsUsecase struct {
	projects   ProjectRepository
	embeddings EmbeddingRepository
	summarizer Summarizer
	embedder   Embedder
	log        *zap.Logger
}

// NewInsightsUsecase accepts a nil embedder or embeddings repository; the
// embedding step and similar-project search are then skipped.
func NewInsightsUsecase(projects ProjectRepository, embeddings EmbeddingRepository, summarizer Summarizer, embedder Embedder, log *zap.Logger) *InsightsUsecase {
	return &InsightsUsecase{projects: projects, embeddings: embeddings, summarizer: summarizer, embedder: embedder, log: log}
}

// Enrich runs every configured step; one failing step does not stop the
// others and all failures are returned together.
func (uc *InsightsUsecase) Enrich(ctx context.Context, projectID uuid.UUID, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var errs []error
	if uc.summarizer != nil {
		if err := uc.summarize(ctx, projectID, text); err != nil {
			metrics.InsightsFailures.WithLabelValues("summary").Inc()
			errs = append(errs, err)
		}
	}
	if uc.embedder != nil && uc.embeddings != nil {
		if err := uc.embed(ctx, projectID, text); err != nil {
			metrics.InsightsFailures.WithLabelValues("embedding").Inc()
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (uc *InsightsUsecase) summarize(ctx context.Context, projectID uuid.UUID, text string) error {
	summary, err := uc.summarizer.Summarize(ctx, text)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	if err := uc.projects.UpdateSummary(ctx, projectID, strings.TrimSpace(summary)); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	uc.log.Debug("summary stored", zap.String("project_id", projectID.String()))
	return nil
}

func (uc *InsightsUsecase) embed(ctx context.Context, projectID uuid.UUID, text string) error {
	vec, err := uc.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	if err := uc.embeddings.Save(ctx, &model.ProjectEmbedding{
		ProjectID: projectID,
		Embedding: pgvector.NewVector(vec),
	}); err != nil {
		return fmt.Errorf("save embedding: %w", err)
	}
	return nil
}

// Similar returns up to k projects nearest to the project's embedding.
func (uc *InsightsUsecase) Similar(ctx context.Context, projectID uuid.UUID, k int) ([]model.Project, error) {
	if uc.embeddings == nil || uc.embedder == nil {
		return nil, ErrInsightsDisabled
	}
	if k <= 0 {
		k = defaultSimilar
	}
	if k > maxSimilar {
		k = maxSimilar
	}
	return uc.embeddings.Similar(ctx, projectID, k)
}

// Forget drops the project's embedding. Failures are only logged.
func (uc *InsightsUsecase) Forget(ctx context.Context, projectID uuid.UUID) {
	if uc.embeddings == nil {
		return
	}
	if err := uc.embeddings.Delete(ctx, projectID); err != nil {
		uc.log.Warn("could not delete embedding", zap.String("project_id", projectID.String()), zap.Error(err))
	}
}
