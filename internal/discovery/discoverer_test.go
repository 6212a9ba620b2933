package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"stp/internal/domain"
)

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

func TestDiscoverer_Discover(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "Tests/MyTests/FooTests.swift", `import XCTest

class FooTests: XCTestCase {
    func testBar() {
    }
    func testBaz() {
    }
}
`)
	writeSource(t, root, "Tests/OtherTests/QuxTests.swift", `import XCTest

final class QuxTests: XCTestCase {
    func testQux() throws {
    }
}
`)

	targets := []domain.Target{
		{Name: "MyTests", Path: "Tests/MyTests", Sources: []string{"FooTests.swift"}},
		{Name: "OtherTests", Path: "Tests/OtherTests"},
		{Name: "MissingTests", Path: "Tests/Missing"},
	}

	roots, err := NewDiscoverer().Discover(root, targets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(roots) != 2 {
		t.Fatalf("expected 2 target roots, got %d", len(roots))
	}

	my := roots[0]
	if my.ID != "MyTests" || len(my.Children) != 1 {
		t.Fatalf("unexpected MyTests root: %+v", my)
	}
	foo := my.Children[0]
	if foo.ID != "MyTests/FooTests" || !foo.IsCase() {
		t.Errorf("unexpected class node: %+v", foo)
	}
	if len(foo.Children) != 2 || foo.Children[0].ID != "MyTests/FooTests/testBar" {
		t.Errorf("unexpected methods: %+v", foo.Children)
	}

	other := roots[1]
	if other.ID != "OtherTests" || len(other.Children) != 1 {
		t.Fatalf("unexpected OtherTests root: %+v", other)
	}
	if other.Children[0].Children[0].ID != "OtherTests/QuxTests/testQux" {
		t.Errorf("unexpected method id: %s", other.Children[0].Children[0].ID)
	}
}

func TestDiscoverer_TargetWithoutTestsIsOmitted(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "Sources/MyLib/Lib.swift", `struct Lib {}`)

	roots, err := NewDiscoverer().Discover(root, []domain.Target{{Name: "MyLib", Path: "Sources/MyLib"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roots) != 0 {
		t.Errorf("expected no roots, got %d", len(roots))
	}
}

func TestFilter_Select(t *testing.T) {
	filter := NewFilter()

	target := domain.NewNode("MyTests", "MyTests")
	foo := target.AddChild("MyTests/FooTests", "FooTests")
	foo.AddChild("MyTests/FooTests/testBar", "testBar")
	foo.AddChild("MyTests/FooTests/testBaz", "testBaz")
	payment := target.AddChild("MyTests/PaymentTests", "PaymentTests")
	payment.AddChild("MyTests/PaymentTests/testCharge", "testCharge")
	roots := []*domain.TestNode{target}

	tests := []struct {
		name     string
		pattern  string
		expected int
	}{
		{name: "empty pattern selects nothing", pattern: "", expected: 0},
		{name: "label match", pattern: "FooTests", expected: 3},
		{name: "substring without wildcards", pattern: "testBa", expected: 2},
		{name: "wildcard substring", pattern: "*Payment*", expected: 2},
		{name: "exact method id", pattern: "MyTests/FooTests/testBar", expected: 1},
		{name: "no matches", pattern: "*Missing*", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.Select(roots, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}
