package cmd

import (
	"github.com/spf13/cobra"
)

var resultsAllFlag bool

// resultsCmd represents the results command.
var resultsCmd = newResultsCmd()

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "List recorded mutant results",
		Long:  "List every recorded mutant and its status. Caught mutants are omitted unless --all is given.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			workflow, _, err := buildWorkflow(cmd)
			if err != nil {
				return err
			}

			results, err := workflow.Results(cmd.Context(), resultsAllFlag)
			if err != nil {
				return err
			}

			for _, result := range results {
				cmd.Printf("%s %s: %s\n", result.Status.Emoji(), result.Key, result.Status)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&resultsAllFlag, "all", false, "include caught mutants")

	return cmd
}

func init() {
	rootCmd.AddCommand(resultsCmd)
}
