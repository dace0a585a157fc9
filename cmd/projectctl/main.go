package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "projectctl",
		Short: "Score, extract and export projects from the command line",
		Long: `projectctl runs the project scorer and text extractor locally and exports
the leaderboard from the configured database. Output is JSON unless noted.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newScoreCommand())
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newExportCommand())
	return rootCmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
