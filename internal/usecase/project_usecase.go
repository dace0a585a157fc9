package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/auth"
	"github.com/fadilmartias/project-review/internal/metrics"
	"github.com/fadilmartias/project-review/internal/model"
	"github.com/fadilmartias/project-review/internal/repository"
	"github.com/fadilmartias/project-review/internal/response"
	"github.com/fadilmartias/project-review/internal/scoring"
)

type SubmitInput struct {
	Title       string
	Description string
	FilePath    string
	FileName    string
}

type ListFilter struct {
	OwnerID  *uuid.UUID
	Page     int
	PageSize int
	Sort     string
}

type ProjectDetail struct {
	Project       model.Project
	ReviewCount   int64
	AverageRating float64
}

type ProjectUsecase struct {
	projects  ProjectRepository
	reviews   ReviewRepository
	extractor Extractor
	scorer    Scorer
	insights  *InsightsUsecase
	log       *zap.Logger

	wg sync.WaitGroup
}

func NewProjectUsecase(projects ProjectRepository, reviews ReviewRepository, extractor Extractor, scorer Scorer, log *zap.Logger) *ProjectUsecase {
	return &ProjectUsecase{projects: projects, reviews: reviews, extractor: extractor, scorer: scorer, log: log}
}

// WithInsights turns on background AI enrichment after scoring.
func (uc *ProjectUsecase) WithInsights(insights *InsightsUsecase) *ProjectUsecase {
	uc.insights = insights
	return uc
}

// Submit stores a draft, then extracts, scores and stores the result. The
// caller's upload at in.FilePath becomes owned by the project.
func (uc *ProjectUsecase) Submit(ctx context.Context, rc auth.RequestContext, in SubmitInput) (*model.Project, error) {
	ownerID, err := requireUser(rc)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	project := &model.Project{
		OwnerID:          ownerID,
		Title:            title,
		Description:      in.Description,
		FilePath:         in.FilePath,
		FileName:         in.FileName,
		Status:           model.ProjectStatusDraft,
		ExtractionStatus: model.ExtractionNone,
	}
	if err := uc.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}

	text := uc.score(project, "submit")
	if err := uc.projects.Update(ctx, project); err != nil {
		uc.discardDraft(ctx, project.ID)
		return nil, fmt.Errorf("save score: %w", err)
	}
	uc.log.Info("project scored",
		zap.String("project_id", project.ID.String()),
		zap.String("extraction", project.ExtractionStatus),
		zap.Float64("overall", project.OverallScore),
	)

	uc.enrich(project.ID, text)
	return project, nil
}

// Rescore re-reads the stored upload and scores the project again.
func (uc *ProjectUsecase) Rescore(ctx context.Context, rc auth.RequestContext, id uuid.UUID) (*model.Project, error) {
	project, err := uc.owned(ctx, rc, id)
	if err != nil {
		return nil, err
	}
	text := uc.score(project, "rescore")
	if err := uc.projects.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("save score: %w", err)
	}
	uc.enrich(project.ID, text)
	return project, nil
}

func (uc *ProjectUsecase) Get(ctx context.Context, id uuid.UUID) (*ProjectDetail, error) {
	project, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := uc.reviews.Stats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}
	s := stats[id]
	return &ProjectDetail{Project: *project, ReviewCount: s.Count, AverageRating: s.Average}, nil
}

func (uc *ProjectUsecase) List(ctx context.Context, f ListFilter) ([]model.Project, *response.Pagination, error) {
	page, size := response.NormalizePage(f.Page, f.PageSize)
	sort := repository.SortRecent
	if f.Sort == repository.SortScore {
		sort = repository.SortScore
	}

	projects, total, err := uc.projects.List(ctx, repository.ProjectFilter{
		OwnerID: f.OwnerID,
		Sort:    sort,
		Offset:  (page - 1) * size,
		Limit:   size,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, response.NewPagination(page, size, total, len(projects)), nil
}

// Delete removes the project, its reviews and its stored upload.
func (uc *ProjectUsecase) Delete(ctx context.Context, rc auth.RequestContext, id uuid.UUID) error {
	project, err := uc.owned(ctx, rc, id)
	if err != nil {
		return err
	}
	if err := uc.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}
	if uc.insights != nil {
		uc.insights.Forget(ctx, id)
	}
	if project.FilePath != "" {
		if err := os.Remove(project.FilePath); err != nil && !os.IsNotExist(err) {
			uc.log.Warn("could not remove upload", zap.String("path", project.FilePath), zap.Error(err))
		}
	}
	return nil
}

// Preview scores text without storing anything.
func (uc *ProjectUsecase) Preview(text string) scoring.Result {
	res := uc.scorer.Score(text)
	metrics.ProjectsScored.WithLabelValues("preview").Inc()
	return res
}

func (uc *ProjectUsecase) Similar(ctx context.Context, id uuid.UUID, k int) ([]model.Project, error) {
	if uc.insights == nil {
		return nil, ErrInsightsDisabled
	}
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}
	return uc.insights.Similar(ctx, id, k)
}

// discardDraft drops a draft whose score could not be stored, so no
// unscored row stays listed.
func (uc *ProjectUsecase) discardDraft(ctx context.Context, id uuid.UUID) {
	if err := uc.projects.Delete(context.WithoutCancel(ctx), id); err != nil {
		uc.log.Warn("could not discard draft", zap.String("project_id", id.String()), zap.Error(err))
	}
}

// Wait blocks until background enrichment started so far has finished.
func (uc *ProjectUsecase) Wait() {
	uc.wg.Wait()
}

// score runs extraction and scoring on the project in place and returns the
// analysis text that was scored.
func (uc *ProjectUsecase) score(project *model.Project, trigger string) string {
	var extracted string
	project.ExtractionStatus = model.ExtractionNone
	if project.FilePath != "" {
		res := uc.extractor.Extract(project.FilePath)
		metrics.ExtractionOutcomes.WithLabelValues(res.Kind.String(), res.Format).Inc()
		project.ExtractionStatus = res.Kind.String()
		if content, ok := res.Content(); ok {
			extracted = content
		} else {
			uc.log.Info("upload text unavailable",
				zap.String("project_id", project.ID.String()),
				zap.Stringer("kind", res.Kind),
				zap.Error(res.Err),
			)
		}
	}

	text := scoring.AnalysisText(project.Description, extracted)
	project.ApplyScore(uc.scorer.Score(text))
	metrics.ProjectsScored.WithLabelValues(trigger).Inc()
	metrics.OverallScore.Observe(project.OverallScore)
	return text
}

func (uc *ProjectUsecase) enrich(id uuid.UUID, text string) {
	if uc.insights == nil {
		return
	}
	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		if err := uc.insights.Enrich(context.Background(), id, text); err != nil {
			uc.log.Warn("insights enrichment incomplete", zap.String("project_id", id.String()), zap.Error(err))
		}
	}()
}

func (uc *ProjectUsecase) find(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := uc.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (uc *ProjectUsecase) owned(ctx context.Context, rc auth.RequestContext, id uuid.UUID) (*model.Project, error) {
	userID, err := requireUser(rc)
	if err != nil {
		return nil, err
	}
	project, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, ErrForbidden
	}
	return project, nil
}
