package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fadilmartias/project-review/internal/config"
	"github.com/fadilmartias/project-review/internal/extract"
)

type extractOutput struct {
	Kind   string `json:"kind"`
	Format string `json:"format,omitempty"`
	Text   string `json:"text,omitempty"`
	Error  string `json:"error,omitempty"`
}

func newExtractCommand() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "extract <path>",
		Short: "Print the text extracted from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := extract.New(config.LoadUploadConfig().ExtractMaxBytes).Extract(args[0])
			if raw {
				content, ok := res.Content()
				if !ok {
					return fmt.Errorf("%s: %v", res.Kind, res.Err)
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			out := extractOutput{Kind: res.Kind.String(), Format: res.Format, Text: res.Text}
			if res.Err != nil {
				out.Error = res.Err.Error()
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print only the text")
	return cmd
}
