// Package cmd provides the root command and CLI setup for pymut.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pymut.dev/pkg/pymut/internal/adapter"
	"pymut.dev/pkg/pymut/internal/controller"
	"pymut.dev/pkg/pymut/internal/domain"
	m "pymut.dev/pkg/pymut/internal/model"
)

var maxChildrenFlag int
var debugFlag bool
var coverageFlag string

const rootLongDescription = `Pymut is a mutation testing tool for Python projects. It rewrites your
source tree into a parallel "mutants" directory where every function is
replaced by a trampoline that can switch to a mutated implementation at
import time, then runs pytest once per mutant to check that your test
suite notices the change.

Configuration lives in pymut.yaml; paths_to_mutate defaults to "src".`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pymut",
		Short: "Python mutation testing tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(debugKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().IntVarP(&maxChildrenFlag, maxChildrenFlagName, "j",
		viper.GetInt(maxChildrenKey), "number of concurrent test processes (default: all CPUs)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(maxChildrenFlagName), maxChildrenKey)

	cmd.PersistentFlags().BoolVar(&debugFlag, debugFlagName,
		viper.GetBool(debugKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(debugFlagName), debugKey)

	cmd.PersistentFlags().StringVar(&coverageFlag, coverageFlagName,
		viper.GetString(coverageReportKey), "coverage.py JSON report; mutate covered lines only")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(coverageFlagName), coverageReportKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// buildWorkflow assembles the adapters behind a Workflow, with output
// going through the given command.
func buildWorkflow(cmd *cobra.Command) (domain.Workflow, controller.UI, error) {
	ui := controller.NewSimpleUI(cmd)

	workflow, err := domain.NewWorkflow(
		resolveConfig(),
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewLocalTestRunnerAdapter(viper.GetString(pythonKey), nil),
		adapter.NewLocalMetaStore(),
		adapter.NewLocalCoverageAdapter(),
		adapter.NewLocalPythonFileAdapter(),
		ui,
	)
	if err != nil {
		return nil, nil, err
	}

	return workflow, ui, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
