package execution

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"stp/internal/domain"
	"stp/internal/parser"
	"stp/internal/report"
)

// BuildEnqueuer is the build collaborator, implemented by BuildQueue.
type BuildEnqueuer interface {
	Enqueue(ctx context.Context, spec BuildSpec) (BuildResult, error)
}

// Runner executes the test binary, implemented by ProcessRunner.
type Runner interface {
	Run(ctx context.Context, program string, args []string, stdout, stderr io.Writer, opt Options) error
}

// DebugRunner runs the test binary under a debugger and replays its buffered
// output through the run's parser. Implemented by debug.Bridge.
type DebugRunner interface {
	Run(ctx context.Context, cfg *LaunchConfig, state *parser.RunState) error
}

// LaunchFactory resolves the launch configuration for a run. An error means
// no configuration is resolvable and the run ends early without reporting.
type LaunchFactory func(debug bool) (*LaunchConfig, error)

// Orchestrator sequences one run: build, then either a streamed execution or
// a debugger-attached one. It owns all side effects on the reporting sink and
// ends it exactly once on every exit path.
type Orchestrator struct {
	logger   zerolog.Logger
	builds   BuildEnqueuer
	runner   Runner
	parser   parser.ResultParser
	sink     report.Sink
	build    BuildSpec
	launch   LaunchFactory
	debugger DebugRunner

	// MaxOutputBytes caps how much process output is fed through the parser.
	MaxOutputBytes int64
}

// NewOrchestrator wires an orchestrator for one package folder. The debugger
// may be nil when debug runs are never requested.
func NewOrchestrator(
	logger zerolog.Logger,
	builds BuildEnqueuer,
	runner Runner,
	resultParser parser.ResultParser,
	sink report.Sink,
	build BuildSpec,
	launch LaunchFactory,
	debugger DebugRunner,
) *Orchestrator {
	return &Orchestrator{
		logger:   logger,
		builds:   builds,
		runner:   runner,
		parser:   resultParser,
		sink:     sink,
		build:    build,
		launch:   launch,
		debugger: debugger,
	}
}

// Run executes the plan. All outcomes are reported through the sink; the
// returned state of the world is the sink's, not an error value.
func (o *Orchestrator) Run(ctx context.Context, plan domain.ExecutionPlan, debug bool) {
	var endOnce sync.Once
	defer endOnce.Do(o.sink.End)

	result, err := o.builds.Enqueue(ctx, o.build)
	if ctx.Err() != nil {
		// Cancelled during the build: end silently.
		return
	}
	if err != nil {
		o.logger.Error().Err(err).Msg("build did not run")
		o.sink.AppendOutput(err.Error() + "\n")
		return
	}
	if !result.Ran || result.ExitCode != 0 {
		// Terminal build failure: surface the compiler output, synthesize no
		// per-test failures.
		o.sink.AppendOutput(result.Output)
		return
	}

	for _, item := range plan.PendingTests {
		o.sink.Enqueued(item)
	}

	state := parser.NewRunState(plan.PendingTests)

	cfg, err := o.launch(debug)
	if err != nil {
		o.logger.Error().Err(err).Msg("no launch configuration resolvable")
		return
	}

	var runErr error
	if debug {
		runErr = o.debugger.Run(ctx, cfg, state)
	} else {
		runErr = o.stream(ctx, cfg, state)
	}

	if runErr == nil || ctx.Err() != nil {
		return
	}

	var execErr *exec.Error
	if errors.As(runErr, &execErr) {
		// The binary never executed, so there is no per-line output worth
		// reporting against.
		o.logger.Error().Err(runErr).Msg("test binary failed to start")
		return
	}

	if current := state.Current(); current != nil {
		o.sink.Failed(current, runErr.Error(), nil)
	}
	o.sink.AppendOutput(runErr.Error() + "\n")
}

// stream runs the binary and feeds its live output through the parser. A
// non-zero exit from the binary is normal (failing tests) and not an error.
func (o *Orchestrator) stream(ctx context.Context, cfg *LaunchConfig, state *parser.RunState) error {
	if ctx.Err() != nil {
		return nil
	}

	parsed := &parseWriter{parser: o.parser, state: state, sink: o.sink}
	opt := Options{Dir: cfg.Dir, Env: cfg.Env, MaxOutputBytes: o.MaxOutputBytes}

	var stdout io.Writer = parsed
	var outputFile *os.File
	if cfg.SplitStdout {
		file, err := os.Create(cfg.OutputPath)
		if err != nil {
			return err
		}
		outputFile = file
		stdout = file
		defer func() {
			_ = outputFile.Close()
			o.replayBufferedOutput(cfg.OutputPath)
			_ = os.Remove(cfg.OutputPath)
		}()
	}

	err := o.runner.Run(ctx, cfg.Program, cfg.Args, stdout, parsed, opt)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

// replayBufferedOutput echoes the split-off stdout to the sink after the
// process exits, newline-normalized. Read failures are best-effort only.
func (o *Orchestrator) replayBufferedOutput(path string) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return
	}
	o.sink.AppendOutput(strings.ReplaceAll(string(data), "\r\n", "\n"))
}

// parseWriter feeds each output chunk through the result parser as it
// arrives. Parsing and echoing happen on the same synchronous step.
type parseWriter struct {
	parser parser.ResultParser
	state  *parser.RunState
	sink   report.Sink
}

func (w *parseWriter) Write(p []byte) (int, error) {
	w.parser.Parse(string(p), w.state, w.sink)
	return len(p), nil
}
