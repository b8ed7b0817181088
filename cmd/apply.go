package cmd

import (
	"github.com/spf13/cobra"
)

// applyCmd represents the apply command.
var applyCmd = newApplyCmd()

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply MUTANT",
		Short: "Apply a mutant to the original source",
		Long: `Rewrite the original source file so the named mutant's body replaces the
function it mutates. Meant for inspecting a surviving mutant in place;
revert the change with your version control system afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, _, err := buildWorkflow(cmd)
			if err != nil {
				return err
			}

			return workflow.ApplyMutant(cmd.Context(), args[0])
		},
	}
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
