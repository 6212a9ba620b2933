package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		"Tests/MyTests/FooTests.swift",
		"Tests/MyTests/Helpers/Fixture.swift",
		"Sources/MyLib/Lib.swift",
		".build/checkouts/dep/DepTests.swift",
		"README.md",
	}
	for _, file := range files {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("// swift"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner([]string{".build"})

	t.Run("finds swift sources and skips excluded dirs", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(results) != 3 {
			t.Errorf("expected 3 swift files, got %d: %v", len(results), results)
		}
		for _, result := range results {
			if filepath.Base(result) == "DepTests.swift" {
				t.Error("files under .build must be skipped")
			}
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		if _, err := scanner.Scan("/non/existent/path"); err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "plain.txt")
		os.WriteFile(testFile, []byte("x"), 0644)
		if _, err := scanner.Scan(testFile); err == nil {
			t.Error("expected error for file path")
		}
	})
}
