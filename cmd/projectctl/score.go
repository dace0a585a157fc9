package main

import (
	"github.com/spf13/cobra"

	"github.com/fadilmartias/project-review/internal/config"
	"github.com/fadilmartias/project-review/internal/extract"
	"github.com/fadilmartias/project-review/internal/scoring"
)

type scoreOutput struct {
	Extraction string         `json:"extraction"`
	Format     string         `json:"format,omitempty"`
	Score      scoring.Result `json:"score"`
}

func newScoreCommand() *cobra.Command {
	var description, file string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a description and optional file without storing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := scoreOutput{Extraction: "none"}
			var extracted string
			if file != "" {
				res := extract.New(config.LoadUploadConfig().ExtractMaxBytes).Extract(file)
				out.Extraction = res.Kind.String()
				out.Format = res.Format
				if content, ok := res.Content(); ok {
					extracted = content
				}
			}
			out.Score = scoring.Score(scoring.AnalysisText(description, extracted))
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to an uploaded file")
	return cmd
}
