package discovery

import (
	"path/filepath"
	"strings"

	"stp/internal/domain"
)

// Filter selects test nodes by id pattern.
type Filter struct{}

// NewFilter creates a new Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// Select returns the nodes whose id or label matches the pattern, using
// wildcard matching. Supports patterns like "FooTests/*" or "*Payment*"; a
// pattern without wildcards is a substring match. An empty pattern selects
// nothing.
func (f *Filter) Select(roots []*domain.TestNode, pattern string) []*domain.TestNode {
	if pattern == "" {
		return nil
	}

	var selected []*domain.TestNode
	for _, root := range roots {
		root.Walk(func(node *domain.TestNode) {
			if f.matches(node, pattern) {
				selected = append(selected, node)
			}
		})
	}
	return selected
}

func (f *Filter) matches(node *domain.TestNode, pattern string) bool {
	if matched, err := filepath.Match(pattern, node.ID); err == nil && matched {
		return true
	}
	if matched, err := filepath.Match(pattern, node.Label); err == nil && matched {
		return true
	}

	if strings.ContainsAny(pattern, "*?") {
		return wildcardContains(node.ID, pattern)
	}
	return strings.Contains(node.ID, pattern)
}

// wildcardContains checks that every literal segment of the pattern appears
// in order in the id. This keeps "*Payment*" style patterns working even when
// filepath.Match stops at the "/" separators.
func wildcardContains(id, pattern string) bool {
	rest := id
	hasLiteral := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		hasLiteral = true
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}
	return hasLiteral
}
