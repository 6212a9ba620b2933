package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"stp/internal/config"
	"stp/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintSummary displays the run's meta statistics followed by a tree of the
// failed tests.
func (f *Formatter) PrintSummary(summary *domain.RunSummary) {
	meta := summary.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Test Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Total Tests")
	color.White("%-27d │\n", meta.TotalTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Passed Tests")
	color.Green("%-27d │\n", meta.PassedTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Failed Tests")
	color.Red("%-27d │\n", meta.FailedTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Skipped Tests")
	color.Yellow("%-27d │\n", meta.SkippedTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	if meta.EnqueuedTests > 0 {
		fmt.Printf("│ %-31s │ ", "Never Ran")
		color.White("%-27d │\n", meta.EnqueuedTests)
		fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	}

	fmt.Printf("│ %-31s │ ", "Duration")
	color.White("%-27s │\n", fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedTests == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d test(s) failed", meta.FailedTests)
		fmt.Println()
		f.printFailureTree(summary.Failures)
	}
}

// printFailureTree groups failures by their id segments (target, class,
// method) and prints them as a tree.
func (f *Formatter) printFailureTree(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	byTarget := make(map[string]map[string][]domain.TestFailure)
	for _, failure := range failures {
		parts := strings.SplitN(failure.TestID, "/", 3)
		target, class := parts[0], ""
		if len(parts) > 1 {
			class = parts[1]
		}
		if byTarget[target] == nil {
			byTarget[target] = make(map[string][]domain.TestFailure)
		}
		byTarget[target][class] = append(byTarget[target][class], failure)
	}

	targets := sortedKeys(byTarget)
	for i, target := range targets {
		lastTarget := i == len(targets)-1
		color.Cyan("%s%s", branch(lastTarget, ""), target)

		classes := sortedKeys(byTarget[target])
		for j, class := range classes {
			lastClass := j == len(classes)-1
			color.Yellow("%s%s", branch(lastClass, indent(lastTarget)), class)

			for k, failure := range byTarget[target][class] {
				lastCase := k == len(byTarget[target][class])-1
				name := failure.TestID
				if idx := strings.LastIndex(name, "/"); idx >= 0 {
					name = name[idx+1:]
				}
				color.Red("%s%s", branch(lastCase, indent(lastTarget)+indent(lastClass)), name)
			}
		}
	}
}

// PrintTestTree prints the discovered test tree, optionally down to the
// individual test methods.
func (f *Formatter) PrintTestTree(roots []*domain.TestNode, showMethods bool) {
	total := 0
	for _, root := range roots {
		for _, class := range root.Children {
			total += len(class.Children)
		}
	}
	color.Green("Found %d test(s) in %d target(s):\n", total, len(roots))

	for i, root := range roots {
		lastTarget := i == len(roots)-1
		color.Cyan("%s%s", branch(lastTarget, ""), root.Label)

		for j, class := range root.Children {
			lastClass := j == len(root.Children)-1
			color.Yellow("%s%s", branch(lastClass, indent(lastTarget)), class.Label)

			if !showMethods {
				continue
			}
			if len(class.Children) == 0 {
				fmt.Printf("%s%s\n", branch(true, indent(lastTarget)+indent(lastClass)), color.RedString("(no tests found)"))
				continue
			}
			for k, method := range class.Children {
				lastMethod := k == len(class.Children)-1
				fmt.Printf("%s%s\n", branch(lastMethod, indent(lastTarget)+indent(lastClass)), color.WhiteString(method.Label))
			}
		}
	}
}

func branch(last bool, prefix string) string {
	if last {
		return prefix + "└── "
	}
	return prefix + "├── "
}

func indent(last bool) string {
	if last {
		return "    "
	}
	return "│   "
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
