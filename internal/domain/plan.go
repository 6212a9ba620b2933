package domain

// ExecutionPlan is the compiled form of a run request: the leaf tests to
// track and the filter arguments for the test binary. Empty FilterArgs means
// the binary runs everything.
type ExecutionPlan struct {
	PendingTests []*TestNode
	FilterArgs   []string
}
