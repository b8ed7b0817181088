package cmd

import (
	"github.com/spf13/cobra"
)

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show MUTANT",
		Short: "Show the diff for one mutant",
		Long:  "Print a unified diff between the original function and the named mutant, e.g. `pymut show mypkg.calc.x_add__mutmut_1`.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, _, err := buildWorkflow(cmd)
			if err != nil {
				return err
			}

			diff, err := workflow.ShowMutant(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.Print(diff)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
