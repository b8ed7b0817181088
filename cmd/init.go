package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configTemplate is the shape written by `pymut init`. Field order here
// is the order in the generated file.
type configTemplate struct {
	Version        int      `yaml:"version"`
	PathsToMutate  []string `yaml:"paths_to_mutate"`
	DoNotMutate    []string `yaml:"do_not_mutate"`
	AlsoCopy       []string `yaml:"also_copy"`
	TestsDir       []string `yaml:"tests_dir"`
	PytestArgs     []string `yaml:"pytest_args"`
	CoverageReport string   `yaml:"coverage_report"`
	MaxChildren    int      `yaml:"max_children"`
}

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default pymut.yaml configuration file",
		Long: `Create a pymut.yaml in the current working directory populated with the
current defaults so it can be edited manually.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			if _, err := os.Stat(targetPath); err == nil {
				return fmt.Errorf("config file %s already exists", targetPath)
			}

			template := configTemplate{
				Version:        currentConfigVersion,
				PathsToMutate:  viper.GetStringSlice(pathsToMutateKey),
				DoNotMutate:    viper.GetStringSlice(doNotMutateKey),
				AlsoCopy:       viper.GetStringSlice(alsoCopyKey),
				TestsDir:       viper.GetStringSlice(testsDirKey),
				PytestArgs:     viper.GetStringSlice(pytestArgsKey),
				CoverageReport: viper.GetString(coverageReportKey),
				MaxChildren:    viper.GetInt(maxChildrenKey),
			}

			contents, err := yaml.Marshal(template)
			if err != nil {
				return fmt.Errorf("failed to render config template: %w", err)
			}

			if err := os.WriteFile(targetPath, contents, 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
