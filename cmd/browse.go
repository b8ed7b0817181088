package cmd

import (
	"github.com/spf13/cobra"

	"pymut.dev/pkg/pymut/internal/controller"
)

// browseCmd represents the browse command.
var browseCmd = newBrowseCmd()

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse results interactively",
		Long:  "Open an interactive browser over the recorded results: files, their mutants, and per-mutant diffs.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			workflow, _, err := buildWorkflow(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			results, err := workflow.FileResults(ctx)
			if err != nil {
				return err
			}

			browser := controller.NewBrowser(cmd.OutOrStdout(), results, func(key string) (string, error) {
				return workflow.ShowMutant(ctx, key)
			})

			return browser.Run()
		},
	}
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
