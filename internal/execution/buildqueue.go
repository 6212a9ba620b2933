package execution

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"
)

// BuildSpec describes a build request for one package folder.
type BuildSpec struct {
	Dir   string
	Swift string   // swift executable, "swift" if empty
	Args  []string // extra arguments after "build --build-tests"
}

// BuildResult is the outcome of an enqueued build. Ran is false when the
// build never produced an exit status, which callers must treat as failure.
type BuildResult struct {
	ExitCode int
	Ran      bool
	Output   string
}

// BuildQueue serializes builds per folder: one build in flight at a time, a
// second request for the same folder waits its turn.
type BuildQueue struct {
	logger zerolog.Logger

	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewBuildQueue creates an empty queue.
func NewBuildQueue(logger zerolog.Logger) *BuildQueue {
	return &BuildQueue{logger: logger, slots: make(map[string]chan struct{})}
}

// Enqueue waits for the folder's build slot, runs `swift build --build-tests`
// and returns its exit status with the combined build output. Cancellation
// while waiting or building returns the context error.
func (q *BuildQueue) Enqueue(ctx context.Context, spec BuildSpec) (BuildResult, error) {
	slot := q.slot(spec.Dir)
	select {
	case slot <- struct{}{}:
		defer func() { <-slot }()
	case <-ctx.Done():
		return BuildResult{}, ctx.Err()
	}

	swift := spec.Swift
	if swift == "" {
		swift = "swift"
	}
	args := append([]string{"build", "--build-tests"}, spec.Args...)

	q.logger.Info().Str("dir", spec.Dir).Msg("building tests")

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, swift, args...)
	cmd.Dir = spec.Dir
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if ctx.Err() != nil {
		return BuildResult{Output: output.String()}, ctx.Err()
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			q.logger.Info().Int("exit_code", exitErr.ExitCode()).Msg("build failed")
			return BuildResult{ExitCode: exitErr.ExitCode(), Ran: true, Output: output.String()}, nil
		}
		return BuildResult{Output: output.String()}, err
	}

	return BuildResult{ExitCode: 0, Ran: true, Output: output.String()}, nil
}

func (q *BuildQueue) slot(dir string) chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	slot, ok := q.slots[dir]
	if !ok {
		slot = make(chan struct{}, 1)
		q.slots[dir] = slot
	}
	return slot
}
