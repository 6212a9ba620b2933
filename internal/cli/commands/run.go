package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stp/internal/config"
	"stp/internal/debug"
	"stp/internal/discovery"
	"stp/internal/domain"
	"stp/internal/execution"
	"stp/internal/manifest"
	"stp/internal/parser"
	"stp/internal/plan"
	"stp/internal/report"
	"stp/internal/storage"
	"stp/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config     *config.Config
	logger     zerolog.Logger
	discoverer *discovery.Discoverer
	filter     *discovery.Filter
	builds     execution.BuildEnqueuer
	runner     execution.Runner
	storage    storage.Storage
	formatter  *ui.Formatter
	viewer     ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	logger zerolog.Logger,
	discoverer *discovery.Discoverer,
	filter *discovery.Filter,
	builds execution.BuildEnqueuer,
	runner execution.Runner,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:     cfg,
		logger:     logger,
		discoverer: discoverer,
		filter:     filter,
		builds:     builds,
		runner:     runner,
		storage:    st,
		formatter:  formatter,
		viewer:     viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	root := rc.config.GetProjectPath()

	loader := manifest.NewLoader(rc.config.SwiftPath, rc.logger)
	targets, err := loader.Load(ctx, root)
	if err != nil {
		return err
	}

	roots, err := rc.discoverer.Discover(root, targets)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	req := domain.RunRequest{
		Include: rc.filter.Select(roots, rc.config.Flags.Filter),
		Exclude: rc.filter.Select(roots, rc.config.Flags.Exclude),
	}
	if rc.config.Flags.Filter != "" && len(req.Include) == 0 {
		color.Yellow("No tests match filter %q", rc.config.Flags.Filter)
		return nil
	}

	execPlan := plan.Build(roots, req)
	if len(execPlan.PendingTests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	// The plan tracks accepted cases and their methods; only methods receive
	// terminal outcomes on a normal run, so the bar counts those.
	leafCount := 0
	for _, item := range execPlan.PendingTests {
		if len(item.Children) == 0 {
			leafCount++
		}
	}

	recorder := report.NewRecorder()
	console := report.NewConsole(os.Stdout, rc.config.Flags.Verbose)
	console.SetProgress(ui.NewProgressBar(leafCount))
	sink := report.Multi(recorder, console)

	resultParser := parser.ForPlatform(runtime.GOOS, root, targets)

	launch := func(debugRun bool) (*execution.LaunchConfig, error) {
		return execution.NewLaunchConfig(runtime.GOOS, root, execPlan.FilterArgs, debugRun)
	}

	session := debug.NewCommandSession(rc.config.DebuggerPath, rc.config.DebuggerArgs, rc.logger)
	bridge := debug.NewBridge(session, resultParser, sink, rc.logger)

	orchestrator := execution.NewOrchestrator(
		rc.logger,
		rc.builds,
		rc.runner,
		resultParser,
		sink,
		execution.BuildSpec{Dir: root, Swift: rc.config.SwiftPath},
		launch,
		bridge,
	)
	orchestrator.MaxOutputBytes = rc.config.MaxOutputBytes

	orchestrator.Run(ctx, execPlan, rc.config.Flags.Debug)

	summary := recorder.Summary()
	if err := rc.storage.Save(summary); err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}

	rc.formatter.PrintSummary(summary)

	if rc.config.Flags.OpenFailures && summary.Meta.FailedTests > 0 {
		if err := rc.viewer.View(summary); err != nil {
			return err
		}
	}

	if summary.Meta.FailedTests > 0 {
		return fmt.Errorf("%d test(s) failed", summary.Meta.FailedTests)
	}
	return nil
}
