package cmd

import (
	"github.com/spf13/cobra"

	"pymut.dev/pkg/pymut/internal/controller"
	"pymut.dev/pkg/pymut/internal/domain"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [mutant patterns...]",
		Short: "Generate mutants and test them",
		Long: `Generate the mutants tree, verify the test suite passes clean and fails
when forced to, then run the suite once per mutant. Without arguments
every mutant that has no recorded result is tested; glob patterns force
a rerun of every mutant key they match (e.g. "mypkg.calc.*").`,
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, ui, err := buildWorkflow(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			if err := ui.Start(ctx, controller.WithRunMode()); err != nil {
				return err
			}
			defer ui.Close(ctx)

			return workflow.Run(ctx, domain.RunOptions{MutantPatterns: args})
		},
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
