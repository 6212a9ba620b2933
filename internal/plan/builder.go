package plan

import (
	"strings"

	"stp/internal/domain"
)

// Build compiles a run request against the test tree into an execution plan.
//
// Nodes are processed from a single work queue, popped from the end, so
// sibling order is reversed relative to the tree. That is not meaningful but
// it is deterministic, and the tests rely on it staying that way.
//
// An accepted test case is tracked as a single pending unit AND its methods
// are tracked individually (through a second queue), because the test binary
// may report either granularity.
func Build(roots []*domain.TestNode, req domain.RunRequest) domain.ExecutionPlan {
	excluded := make(map[string]bool, len(req.Exclude))
	for _, node := range req.Exclude {
		excluded[node.ID] = true
	}

	var queue []*domain.TestNode
	if len(req.Include) > 0 {
		queue = append(queue, req.Include...)
	} else {
		queue = append(queue, roots...)
	}

	var pending []*domain.TestNode
	var methods []*domain.TestNode // second queue: methods of accepted cases

	for len(queue) > 0 {
		node := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if excluded[node.ID] {
			continue
		}

		switch {
		case node.IsCase() && !excludedByPrefix(req.Exclude, node.ID):
			pending = append(pending, node)
			methods = append(methods, node.Children...)
		case len(node.Children) > 0:
			queue = append(queue, node.Children...)
		default:
			pending = append(pending, node)
		}
	}

	// Filter arguments are snapshotted before the method drain: the binary is
	// filtered at case/top granularity, methods are only tracked.
	var filterArgs []string
	if req.IsFiltered() {
		filterArgs = make([]string, len(pending))
		for i, node := range pending {
			filterArgs[i] = node.ID
		}
	}

	for len(methods) > 0 {
		node := methods[len(methods)-1]
		methods = methods[:len(methods)-1]
		if excluded[node.ID] {
			continue
		}
		pending = append(pending, node)
	}

	return domain.ExecutionPlan{PendingTests: pending, FilterArgs: filterArgs}
}

// excludedByPrefix reports whether any excluded node's ID is a string prefix
// of the given case ID, which excludes the case recursively.
func excludedByPrefix(exclude []*domain.TestNode, caseID string) bool {
	for _, node := range exclude {
		if strings.HasPrefix(caseID, node.ID) {
			return true
		}
	}
	return false
}
