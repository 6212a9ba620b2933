package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParser_FindTestClasses(t *testing.T) {
	parser := NewParser()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "FooTests.swift")
	swiftContent := `import XCTest

final class FooTests: XCTestCase {
    func testBar() throws {
    }

    func testBaz() async throws {
    }

    override func setUp() {
    }

    func helperMethod(value: Int) {
    }
}

class Fixture {
    func testNotACase() {
    }
}

class MoreTests: XCTestCase {
    func testQux() {
    }
}
`
	if err := os.WriteFile(testFile, []byte(swiftContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	t.Run("finds test classes and methods", func(t *testing.T) {
		classes, err := parser.FindTestClasses(testFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(classes) != 2 {
			t.Fatalf("expected 2 test classes, got %d: %v", len(classes), classes)
		}

		if classes[0].Name != "FooTests" {
			t.Errorf("expected first class FooTests, got %s", classes[0].Name)
		}
		if len(classes[0].Methods) != 2 || classes[0].Methods[0] != "testBar" || classes[0].Methods[1] != "testBaz" {
			t.Errorf("unexpected FooTests methods: %v", classes[0].Methods)
		}

		if classes[1].Name != "MoreTests" {
			t.Errorf("expected second class MoreTests, got %s", classes[1].Name)
		}
		if len(classes[1].Methods) != 1 || classes[1].Methods[0] != "testQux" {
			t.Errorf("unexpected MoreTests methods: %v", classes[1].Methods)
		}
	})

	t.Run("methods in a helper class are not attributed", func(t *testing.T) {
		classes, err := parser.FindTestClasses(testFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, class := range classes {
			for _, method := range class.Methods {
				if method == "testNotACase" {
					t.Errorf("method from a non-XCTestCase class was attributed to %s", class.Name)
				}
			}
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.FindTestClasses("/non/existent/file.swift")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}

func TestParser_ParameterizedFuncIsNotATest(t *testing.T) {
	parser := NewParser()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "BarTests.swift")
	swiftContent := `import XCTest

class BarTests: XCTestCase {
    func testWithArgument(x: Int) {
    }

    func testReal() {
    }
}
`
	if err := os.WriteFile(testFile, []byte(swiftContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	classes, err := parser.FindTestClasses(testFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}
	if len(classes[0].Methods) != 1 || classes[0].Methods[0] != "testReal" {
		t.Errorf("XCTest only runs zero-argument test funcs, got %v", classes[0].Methods)
	}
}
