package domain

import "strings"

// TestNode is a node in the test tree: a target, a test case (class) or an
// individual test method. IDs are hierarchical and joined with "/" at every
// level, e.g. "MyTarget/FooTests/testBar". The tree is built once per package
// and treated as immutable for the duration of a run.
type TestNode struct {
	ID       string
	Label    string
	Parent   *TestNode // back-reference, never owned
	Children []*TestNode
}

// NewNode creates a detached node.
func NewNode(id, label string) *TestNode {
	return &TestNode{ID: id, Label: label}
}

// AddChild appends a child and sets its parent back-reference.
func (n *TestNode) AddChild(id, label string) *TestNode {
	child := &TestNode{ID: id, Label: label, Parent: n}
	n.Children = append(n.Children, child)
	return child
}

// IsCase reports whether the node is a test-case node: exactly one ancestor,
// so its children are individual test methods.
func (n *TestNode) IsCase() bool {
	return n.Parent != nil && n.Parent.Parent == nil
}

// Root returns the outermost ancestor (the target-level node).
func (n *TestNode) Root() *TestNode {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

// Walk visits the node and all descendants depth-first.
func (n *TestNode) Walk(visit func(*TestNode)) {
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// Leaves returns all descendant nodes without children, in tree order.
func (n *TestNode) Leaves() []*TestNode {
	var leaves []*TestNode
	n.Walk(func(node *TestNode) {
		if len(node.Children) == 0 {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

// HasIDSuffix reports whether suffix matches the node ID on a "/" boundary,
// e.g. "FooTests/testBar" matches "MyTarget/FooTests/testBar".
func (n *TestNode) HasIDSuffix(suffix string) bool {
	if n.ID == suffix {
		return true
	}
	return strings.HasSuffix(n.ID, "/"+suffix)
}
