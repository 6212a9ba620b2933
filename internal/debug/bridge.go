package debug

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"stp/internal/execution"
	"stp/internal/parser"
	"stp/internal/report"
)

// ErrSessionNotStarted is returned when the debugger session never came up.
var ErrSessionNotStarted = errors.New("debug session failed to start")

// Bridge adapts a debug session to the same text-parsing step used by
// streamed runs. The session's output is buffered to a file; on terminate the
// file is read back, newline-normalized and run through the grammar parser.
// While the session runs, the file is tailed via fsnotify for diagnostics.
type Bridge struct {
	session Session
	parser  parser.ResultParser
	sink    report.Sink
	logger  zerolog.Logger
}

// NewBridge wires a bridge for one run.
func NewBridge(session Session, resultParser parser.ResultParser, sink report.Sink, logger zerolog.Logger) *Bridge {
	return &Bridge{session: session, parser: resultParser, sink: sink, logger: logger}
}

// Run starts the debug session and blocks until it terminates or ctx is
// cancelled (which requests a session stop). Exactly one resolution is
// produced no matter which terminal event fires first, and the buffered
// output file is always deleted, best effort.
func (b *Bridge) Run(ctx context.Context, cfg *execution.LaunchConfig, state *parser.RunState) error {
	done := make(chan struct{})
	var resolveOnce sync.Once
	resolve := func() { resolveOnce.Do(func() { close(done) }) }

	stopTail := b.tailForDiagnostics(cfg.OutputPath)
	defer stopTail()

	releaseStart := b.session.OnStart(func() {
		b.sink.AppendOutput("> Debugging tests\n")
	})
	defer releaseStart()
	releaseTerminate := b.session.OnTerminate(resolve)
	defer releaseTerminate()

	started, err := b.session.Start(ctx, cfg)
	if err != nil || !started {
		_ = os.Remove(cfg.OutputPath)
		if err == nil {
			err = ErrSessionNotStarted
		}
		return err
	}

	// Cancellation is wired to a stop request; the terminate event still
	// resolves the run.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			b.session.Stop()
		case <-watchDone:
		}
	}()

	<-done
	stopTail()
	defer func() { _ = os.Remove(cfg.OutputPath) }()

	if ctx.Err() != nil {
		// Cancelled: parser state processed so far is kept, nothing more is
		// solicited.
		return nil
	}

	data, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		// Best-effort read back, never escalated.
		b.logger.Debug().Err(err).Msg("could not read buffered debug output")
		return nil
	}
	b.parser.Parse(strings.ReplaceAll(string(data), "\r\n", "\n"), state, b.sink)
	return nil
}

// tailForDiagnostics watches the buffered output file and logs appended
// content at debug level while the session runs. The sink only sees the
// output once, at read-back.
func (b *Bridge) tailForDiagnostics(path string) (stop func()) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return func() {}
	}
	if err := watcher.Add(path); err != nil {
		// The file may not exist until the session opens it; diagnostics are
		// optional.
		_ = watcher.Close()
		return func() {}
	}

	var offset int64
	go func() {
		for event := range watcher.Events {
			if event.Op&fsnotify.Write == 0 {
				continue
			}
			file, err := os.Open(path)
			if err != nil {
				continue
			}
			if _, err := file.Seek(offset, 0); err == nil {
				buf := make([]byte, 64*1024)
				n, _ := file.Read(buf)
				if n > 0 {
					offset += int64(n)
					b.logger.Debug().Str("output", string(buf[:n])).Msg("debug session output")
				}
			}
			_ = file.Close()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { _ = watcher.Close() })
	}
}
