package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stp/internal/cli"
	"stp/internal/config"
	"stp/internal/discovery"
	"stp/internal/execution"
	"stp/internal/storage"
	"stp/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, logger zerolog.Logger) *Commands {
	discoverer := discovery.NewDiscoverer()
	filter := discovery.NewFilter()
	builds := execution.NewBuildQueue(logger)
	runner := execution.NewProcessRunner(logger)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, logger, discoverer, filter, builds, runner, jsonStorage, formatter, errorViewer),
		List:     NewListCommand(cfg, logger, discoverer, filter, formatter),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		*cfg = *config.Load(flags.ToConfigFlags())
		if v := os.Getenv("STP_LOG_LEVEL"); v != "" {
			if level, err := zerolog.ParseLevel(v); err == nil {
				zerolog.SetGlobalLevel(level)
			}
		}
		if flags.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return nil
	}

	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Build and run the package's tests",
		Long:    "Build the package's test bundle, run it and stream results as they happen",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().StringVarP(&flags.ProjectPath, "path", "p", "", "Path to the Swift package folder")
	runCmd.Flags().StringVar(&flags.SwiftPath, "swift", "", "Swift executable to build and describe with")
	runCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Run only tests matching the pattern (supports wildcards, e.g. '*Payment*' or 'FooTests/*')")
	runCmd.Flags().StringVarP(&flags.Exclude, "exclude", "x", "", "Skip tests matching the pattern")
	runCmd.Flags().BoolVarP(&flags.Debug, "debug", "d", false, "Run the tests under the debugger")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Echo raw test output while running")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered tests",
		Long:    "Discover the package's test targets and list their tests without executing them",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.ProjectPath, "path", "p", "", "Path to the Swift package folder")
	listCmd.Flags().StringVar(&flags.SwiftPath, "swift", "", "Swift executable to describe the package with")
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "List only tests matching the pattern")
	listCmd.Flags().BoolVarP(&flags.Methods, "methods", "m", false, "List individual test methods, not just classes")
	rootCmd.AddCommand(listCmd)

	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View test failures interactively",
		Long:    "Display test failures from the last run in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: applyFlags,
	}
	failuresCmd.Flags().StringVarP(&flags.ProjectPath, "path", "p", "", "Path to the Swift package folder")
	rootCmd.AddCommand(failuresCmd)
}
