package debug

import (
	"context"

	"stp/internal/execution"
)

// Session is the debugger collaborator: a start request, started/terminated
// events and a stop request. Listener registration returns a release function
// so a bridge can drop its listeners once its run resolves.
type Session interface {
	// Start launches the session for the given configuration. It returns
	// false (or an error) when the session could not be started.
	Start(ctx context.Context, cfg *execution.LaunchConfig) (bool, error)
	OnStart(fn func()) (release func())
	OnTerminate(fn func()) (release func())
	Stop()
}
