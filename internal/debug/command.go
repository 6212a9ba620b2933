package debug

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"

	"stp/internal/execution"
)

// CommandSession adapts an external debugger command (lldb by default) to the
// Session contract: the debugger process starting is the start event, its
// exit the terminate event. Both output streams go to the launch config's
// buffered output file.
type CommandSession struct {
	Debugger string   // e.g. "lldb"
	Args     []string // debugger arguments placed before the program
	Logger   zerolog.Logger

	mu          sync.Mutex
	cmd         *exec.Cmd
	nextID      int
	onStart     map[int]func()
	onTerminate map[int]func()
}

// NewCommandSession creates a session that launches the test binary under the
// given debugger command.
func NewCommandSession(debugger string, args []string, logger zerolog.Logger) *CommandSession {
	return &CommandSession{
		Debugger:    debugger,
		Args:        args,
		Logger:      logger,
		onStart:     make(map[int]func()),
		onTerminate: make(map[int]func()),
	}
}

// Start launches the debugger process. Cancelling ctx kills it. The terminate
// event fires from a watcher goroutine when the process exits, however it
// exits.
func (s *CommandSession) Start(ctx context.Context, cfg *execution.LaunchConfig) (bool, error) {
	if cfg.OutputPath == "" {
		return false, fmt.Errorf("debug launch needs a buffered output path")
	}
	output, err := os.Create(cfg.OutputPath)
	if err != nil {
		return false, fmt.Errorf("open output buffer: %w", err)
	}

	args := append(append([]string{}, s.Args...), cfg.Program)
	args = append(args, cfg.Args...)

	cmd := exec.CommandContext(ctx, s.Debugger, args...)
	cmd.Dir = cfg.Dir
	if cfg.Env != nil {
		cmd.Env = cfg.Env
	}
	cmd.Stdout = output
	cmd.Stderr = output

	s.Logger.Debug().Str("debugger", s.Debugger).Strs("args", args).Msg("starting debug session")

	if err := cmd.Start(); err != nil {
		_ = output.Close()
		return false, err
	}

	s.mu.Lock()
	s.cmd = cmd
	starts := listeners(s.onStart)
	s.mu.Unlock()

	for _, fn := range starts {
		fn()
	}

	go func() {
		err := cmd.Wait()
		_ = output.Close()
		if err != nil {
			s.Logger.Debug().Err(err).Msg("debug session exited")
		}
		s.mu.Lock()
		terminates := listeners(s.onTerminate)
		s.mu.Unlock()
		for _, fn := range terminates {
			fn()
		}
	}()

	return true, nil
}

// OnStart registers a started listener.
func (s *CommandSession) OnStart(fn func()) func() {
	return s.register(s.onStart, fn)
}

// OnTerminate registers a terminated listener.
func (s *CommandSession) OnTerminate(fn func()) func() {
	return s.register(s.onTerminate, fn)
}

// Stop requests the debugger process to stop.
func (s *CommandSession) Stop() {
	s.mu.Lock()
	cmd := s.cmd
	s.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

func (s *CommandSession) register(set map[int]func(), fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	set[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(set, id)
	}
}

func listeners(set map[int]func()) []func() {
	out := make([]func(), 0, len(set))
	for _, fn := range set {
		out = append(out, fn)
	}
	return out
}
