package parser

import (
	"regexp"
	"strings"

	"stp/internal/domain"
	"stp/internal/report"
)

// Unqualified grammar: the runtime prints bare "Class.method" names, so
// lookups match by id suffix and failures disambiguate through the package
// targets.
var (
	unqualifiedStarted = regexp.MustCompile(`Test Case '(\w+)\.(\w+)' started`)
	unqualifiedPassed  = regexp.MustCompile(`Test Case '(\w+)\.(\w+)' passed \((\d+(?:\.\d+)?) seconds?\)`)
	unqualifiedFailed  = regexp.MustCompile(`^(.+?):(\d+): error: (\w+)\.(\w+) : (.*)$`)
	unqualifiedSkipped = regexp.MustCompile(`^(.+?):(\d+): (\w+)\.(\w+) : Test skipped`)
)

// UnqualifiedParser handles output without target qualifiers. Each chunk is
// processed in two passes: failures and skips first, passes second. A "passed"
// summary line for an already-failed test must not overwrite the failure, and
// removing failed entries first keeps a same-named passing test in another
// target from stealing the match.
type UnqualifiedParser struct {
	Root    string
	Targets []domain.Target
}

func (p *UnqualifiedParser) Parse(chunk string, state *RunState, sink report.Sink) {
	sink.AppendOutput(chunk)

	// This grammar does not reliably pair start lines with outcomes across
	// chunks, so a stale cursor must not leak into this chunk's errors.
	state.ClearCurrent()

	lines := strings.Split(chunk, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	for _, line := range lines {
		if m := unqualifiedStarted.FindStringSubmatch(line); m != nil {
			if node := state.FindSuffix(m[1] + "/" + m[2]); node != nil {
				sink.Started(node)
				state.SetCurrent(node)
			}
			continue
		}

		if m := unqualifiedFailed.FindStringSubmatch(line); m != nil {
			if node := p.disambiguate(state, m[3]+"/"+m[4], m[1]); node != nil {
				sink.Failed(node, m[5], location(m[1], m[2]))
				state.Remove(node)
				state.ClearCurrent()
			}
			continue
		}

		if m := unqualifiedSkipped.FindStringSubmatch(line); m != nil {
			if node := p.disambiguate(state, m[3]+"/"+m[4], m[1]); node != nil {
				sink.Skipped(node)
				state.Remove(node)
				state.ClearCurrent()
			}
			continue
		}
	}

	for _, line := range lines {
		if m := unqualifiedPassed.FindStringSubmatch(line); m != nil {
			if node := state.FindSuffix(m[1] + "/" + m[2]); node != nil {
				sink.Passed(node, toMilliseconds(m[3]))
				state.Remove(node)
				state.ClearCurrent()
			}
		}
	}
}

// disambiguate resolves a "Class/method" suffix to a pending test. When
// several targets contain a same-named test, the failure's file path decides:
// a candidate is accepted when its target declares the file among its
// sources. Without such a match the first suffix match wins.
func (p *UnqualifiedParser) disambiguate(state *RunState, suffix, file string) *domain.TestNode {
	candidates := state.MatchSuffix(suffix)
	if len(candidates) == 0 {
		return nil
	}
	for _, candidate := range candidates {
		if target, ok := p.targetByName(candidate.Root().Label); ok && target.ContainsFile(p.Root, file) {
			return candidate
		}
	}
	return candidates[0]
}

func (p *UnqualifiedParser) targetByName(name string) (domain.Target, bool) {
	for _, target := range p.Targets {
		if target.Name == name {
			return target, true
		}
	}
	return domain.Target{}, false
}
