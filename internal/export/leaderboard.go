// Package export renders project data as spreadsheets.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/fadilmartias/project-review/internal/model"
	"github.com/fadilmartias/project-review/internal/repository"
)

const LeaderboardSheet = "Leaderboard"

var leaderboardHeader = []any{
	"Rank", "Title", "Owner", "Clarity", "Creativity", "Technicality",
	"Overall", "Reviews", "Avg Rating", "Extraction", "Submitted",
}

type ProjectLister interface {
	List(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, int64, error)
}

type StatsReader interface {
	Stats(ctx context.Context, projectIDs ...uuid.UUID) (map[uuid.UUID]model.ReviewStats, error)
}

type Service struct {
	projects ProjectLister
	reviews  StatsReader
}

func NewService(projects ProjectLister, reviews StatsReader) *Service {
	return &Service{projects: projects, reviews: reviews}
}

// LeaderboardXLSX returns a workbook of every project ordered by overall
// score, highest first.
func (s *Service) LeaderboardXLSX(ctx context.Context) ([]byte, error) {
	projects, _, err := s.projects.List(ctx, repository.ProjectFilter{Sort: repository.SortScore})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	stats, err := s.reviews.Stats(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), LeaderboardSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(LeaderboardSheet, "A1", &leaderboardHeader); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(LeaderboardSheet, 1, 1, bold); err != nil {
		return nil, err
	}

	for i, p := range projects {
		st := stats[p.ID]
		row := []any{
			i + 1, p.Title, p.OwnerID.String(),
			p.ClarityScore, p.CreativityScore, p.TechnicalityScore, p.OverallScore,
			st.Count, st.Average, p.ExtractionStatus, p.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(LeaderboardSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetPanes(LeaderboardSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
