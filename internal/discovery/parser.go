package discovery

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// TestClass is one XCTestCase subclass found in a source file, with its test
// methods in declaration order.
type TestClass struct {
	Name    string
	Methods []string
}

// Parser extracts test classes from Swift source files.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	// class FooTests: XCTestCase {  (optionally final / public / open)
	classPattern = regexp.MustCompile(`^\s*(?:(?:final|public|open|internal)\s+)*class\s+(\w+)\s*:\s*([\w.,\s]+)\{?`)
	// func testBar() { / func testBar() throws { / func testBar() async throws {
	methodPattern = regexp.MustCompile(`^\s*(?:(?:public|internal|private|fileprivate|override|final)\s+)*func\s+(test\w*)\s*\(\s*\)`)
)

// FindTestClasses parses a source file and returns its XCTestCase subclasses.
// Methods are attributed to the most recently declared class; Swift test files
// do not nest test classes, so a flat line scan is sufficient.
func (p *Parser) FindTestClasses(filePath string) ([]TestClass, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	var classes []TestClass
	current := -1

	for _, line := range strings.Split(string(content), "\n") {
		if match := classPattern.FindStringSubmatch(line); match != nil {
			if inheritsTestCase(match[2]) {
				classes = append(classes, TestClass{Name: match[1]})
				current = len(classes) - 1
			} else {
				// A helper class interrupts attribution until the next case.
				current = -1
			}
			continue
		}

		if current < 0 {
			continue
		}
		if match := methodPattern.FindStringSubmatch(line); match != nil {
			classes[current].Methods = append(classes[current].Methods, match[1])
		}
	}

	return classes, nil
}

func inheritsTestCase(superclasses string) bool {
	for _, name := range strings.Split(superclasses, ",") {
		if strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), "{")) == "XCTestCase" {
			return true
		}
	}
	return false
}
