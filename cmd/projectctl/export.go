package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fadilmartias/project-review/internal/bootstrap"
	"github.com/fadilmartias/project-review/internal/config"
	"github.com/fadilmartias/project-review/internal/logger"
)

func newExportCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the project leaderboard workbook from the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appConfig := config.LoadAppConfig()
			log := logger.New(appConfig.LogLevel, appConfig.LogFormat)
			defer log.Sync()

			container, err := bootstrap.Build(cmd.Context(), log)
			if err != nil {
				return err
			}
			defer container.Close()

			data, err := container.Exporter.LeaderboardXLSX(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "leaderboard.xlsx", "output file")
	return cmd
}
