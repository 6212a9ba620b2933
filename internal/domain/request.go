package domain

// RunRequest selects which parts of the tree a run should cover. An empty
// Include means the whole tree; Exclude applies recursively (an excluded case
// drops all of its methods).
type RunRequest struct {
	Include []*TestNode
	Exclude []*TestNode
}

// IsFiltered reports whether the request restricts the run in any way. Only
// filtered requests produce filter arguments for the test binary.
func (r RunRequest) IsFiltered() bool {
	return len(r.Include) > 0 || len(r.Exclude) > 0
}
