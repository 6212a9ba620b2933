package execution

import (
	"context"
	"io"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"
)

// Options controls how a test binary is executed.
type Options struct {
	Dir            string
	Env            []string // nil keeps the parent environment
	MaxOutputBytes int64    // 0 means unlimited
}

// ProcessRunner starts external processes and streams their output. The
// process is killed when the context is cancelled.
type ProcessRunner struct {
	logger zerolog.Logger
}

// NewProcessRunner creates a runner that logs through the given logger.
func NewProcessRunner(logger zerolog.Logger) *ProcessRunner {
	return &ProcessRunner{logger: logger}
}

// Run executes program and blocks until it exits or ctx is cancelled. Output
// is streamed into the writers as it is produced; past MaxOutputBytes the
// remainder is discarded.
func (r *ProcessRunner) Run(ctx context.Context, program string, args []string, stdout, stderr io.Writer, opt Options) error {
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Dir = opt.Dir
	if opt.Env != nil {
		cmd.Env = opt.Env
	}

	budget := newOutputBudget(opt.MaxOutputBytes)
	cmd.Stdout, cmd.Stderr = budget.wrapStreams(stdout, stderr)

	r.logger.Debug().
		Str("program", program).
		Strs("args", args).
		Str("dir", opt.Dir).
		Msg("starting test process")

	err := cmd.Run()
	if err != nil {
		r.logger.Debug().Err(err).Msg("test process finished")
	}
	return err
}

// outputBudget caps the combined bytes written across both streams.
type outputBudget struct {
	mu        sync.Mutex
	remaining int64
	unlimited bool
}

func newOutputBudget(max int64) *outputBudget {
	return &outputBudget{remaining: max, unlimited: max <= 0}
}

// wrapStreams wraps stdout and stderr for use as exec.Cmd streams. os/exec
// only serializes writes when Stdout and Stderr are the same value, so a
// shared sink must come back as a single wrapper.
func (b *outputBudget) wrapStreams(stdout, stderr io.Writer) (io.Writer, io.Writer) {
	out := b.wrap(stdout)
	if stderr == stdout {
		return out, out
	}
	return out, b.wrap(stderr)
}

func (b *outputBudget) wrap(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	if b.unlimited {
		return w
	}
	return &budgetWriter{budget: b, w: w}
}

// take reserves up to n bytes of the budget and returns how many were granted.
func (b *outputBudget) take(n int64) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.remaining <= 0 {
		return 0
	}
	if n > b.remaining {
		n = b.remaining
	}
	b.remaining -= n
	return n
}

type budgetWriter struct {
	budget *outputBudget
	w      io.Writer
}

func (bw *budgetWriter) Write(p []byte) (int, error) {
	n := bw.budget.take(int64(len(p)))
	if n == 0 {
		return len(p), nil
	}
	if _, err := bw.w.Write(p[:n]); err != nil {
		return 0, err
	}
	return len(p), nil
}
