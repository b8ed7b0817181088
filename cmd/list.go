package cmd

import (
	"github.com/spf13/cobra"

	"pymut.dev/pkg/pymut/internal/controller"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List source files and mutant counts",
		Long:  "Generate mutants in memory and show how many each configured source file would produce, without touching the mutants tree.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			workflow, ui, err := buildWorkflow(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			if err := ui.Start(ctx, controller.WithEstimateMode()); err != nil {
				return err
			}
			defer ui.Close(ctx)

			mutants, listErr := workflow.ListMutants(ctx)

			return ui.DisplayEstimation(ctx, mutants, listErr)
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
