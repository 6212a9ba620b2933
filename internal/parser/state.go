package parser

import "stp/internal/domain"

// RunState is the mutable per-run parsing state: the ordered pending tests
// still awaiting a terminal outcome and the most recently started test. All
// mutation happens synchronously inside chunk processing.
type RunState struct {
	pending []*domain.TestNode
	current *domain.TestNode
}

// NewRunState initializes the state from a plan's pending tests.
func NewRunState(pending []*domain.TestNode) *RunState {
	copied := make([]*domain.TestNode, len(pending))
	copy(copied, pending)
	return &RunState{pending: copied}
}

// Pending returns the tests still awaiting a terminal outcome.
func (s *RunState) Pending() []*domain.TestNode {
	return s.pending
}

// Current returns the most recently started test without a terminal outcome,
// or nil.
func (s *RunState) Current() *domain.TestNode {
	return s.current
}

// SetCurrent marks a test as the one currently executing.
func (s *RunState) SetCurrent(node *domain.TestNode) {
	s.current = node
}

// ClearCurrent resets the currently-executing cursor.
func (s *RunState) ClearCurrent() {
	s.current = nil
}

// FindExact returns the pending test with exactly the given id, or nil.
func (s *RunState) FindExact(id string) *domain.TestNode {
	for _, node := range s.pending {
		if node.ID == id {
			return node
		}
	}
	return nil
}

// FindSuffix returns the first pending test whose id ends with the given
// suffix on a "/" boundary, or nil.
func (s *RunState) FindSuffix(suffix string) *domain.TestNode {
	for _, node := range s.pending {
		if node.HasIDSuffix(suffix) {
			return node
		}
	}
	return nil
}

// MatchSuffix returns every pending test whose id ends with the given suffix,
// in pending order.
func (s *RunState) MatchSuffix(suffix string) []*domain.TestNode {
	var matches []*domain.TestNode
	for _, node := range s.pending {
		if node.HasIDSuffix(suffix) {
			matches = append(matches, node)
		}
	}
	return matches
}

// Remove drops a test from the pending set the moment it receives a terminal
// outcome, so a repeated report for it becomes a no-op.
func (s *RunState) Remove(node *domain.TestNode) {
	for i, pending := range s.pending {
		if pending == node {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}
