package parser

import (
	"testing"

	"stp/internal/domain"
)

func TestRunState_SuffixMatchesOnBoundary(t *testing.T) {
	target := domain.NewNode("MyTarget", "MyTarget")
	foo := target.AddChild("MyTarget/FooTests", "FooTests")
	bar := foo.AddChild("MyTarget/FooTests/testBar", "testBar")
	state := NewRunState([]*domain.TestNode{bar})

	tests := []struct {
		name   string
		suffix string
		found  bool
	}{
		{"class and method", "FooTests/testBar", true},
		{"full id", "MyTarget/FooTests/testBar", true},
		{"method only", "testBar", true},
		{"partial segment", "ooTests/testBar", false},
		{"wrong method", "FooTests/testBaz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := state.FindSuffix(tt.suffix)
			if (got != nil) != tt.found {
				t.Errorf("FindSuffix(%q) found=%v, want %v", tt.suffix, got != nil, tt.found)
			}
		})
	}
}

func TestRunState_RemoveIsIdempotent(t *testing.T) {
	target := domain.NewNode("T", "T")
	c := target.AddChild("T/C", "C")
	a := c.AddChild("T/C/testA", "testA")
	b := c.AddChild("T/C/testB", "testB")
	state := NewRunState([]*domain.TestNode{a, b})

	state.Remove(a)
	state.Remove(a)

	if len(state.Pending()) != 1 {
		t.Fatalf("expected 1 pending test, got %d", len(state.Pending()))
	}
	if state.Pending()[0] != b {
		t.Error("wrong test removed")
	}
}
