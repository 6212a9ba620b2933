package parser

import (
	"stp/internal/domain"
	"stp/internal/report"
)

// ResultParser consumes raw output chunks from the test binary and reconciles
// them against the run state, emitting outcomes to the sink. Chunks are not
// guaranteed to align on line boundaries; each call re-splits the chunk and
// pattern-matches per trimmed line, while the chunk itself is echoed to the
// sink verbatim. Unmatched lines are ignored, the grammars are best-effort
// extractions from free-form tool output.
type ResultParser interface {
	Parse(chunk string, state *RunState, sink report.Sink)
}

// ForPlatform selects the grammar for the given GOOS, once per run. Darwin
// XCTest prints fully qualified "-[Target.Class method]" identifiers; the
// open-source runtime prints bare "Class.method" names and needs the package
// targets to disambiguate same-named tests.
func ForPlatform(goos, root string, targets []domain.Target) ResultParser {
	if goos == "darwin" {
		return &QualifiedParser{}
	}
	return &UnqualifiedParser{Root: root, Targets: targets}
}
