package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"stp/internal/domain"
	"stp/internal/report"
)

// Qualified grammar, one pattern per outcome. Checked in priority order per
// line; the first match wins.
var (
	qualifiedStarted = regexp.MustCompile(`Test Case '-\[(\S+) (\S+)\]' started`)
	qualifiedPassed  = regexp.MustCompile(`Test Case '-\[(\S+) (\S+)\]' passed \((\d+(?:\.\d+)?) seconds?\)`)
	qualifiedFailed  = regexp.MustCompile(`^(.+?):(\d+): error: -\[(\S+) (\S+)\] : (.*)$`)
	qualifiedSkipped = regexp.MustCompile(`^(.+?):(\d+): -\[(\S+) (\S+)\] : Test skipped`)
)

// QualifiedParser handles output that carries fully qualified test
// identifiers ("-[Target.Class method]"), so every lookup is an exact id
// match against the pending set.
type QualifiedParser struct{}

func (p *QualifiedParser) Parse(chunk string, state *RunState, sink report.Sink) {
	sink.AppendOutput(chunk)

	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)

		if m := qualifiedStarted.FindStringSubmatch(line); m != nil {
			if node := state.FindExact(qualifiedID(m[1], m[2])); node != nil {
				sink.Started(node)
				state.SetCurrent(node)
			}
			continue
		}

		if m := qualifiedPassed.FindStringSubmatch(line); m != nil {
			if node := state.FindExact(qualifiedID(m[1], m[2])); node != nil {
				sink.Passed(node, toMilliseconds(m[3]))
				state.Remove(node)
				state.ClearCurrent()
			}
			continue
		}

		if m := qualifiedFailed.FindStringSubmatch(line); m != nil {
			if node := state.FindExact(qualifiedID(m[3], m[4])); node != nil {
				sink.Failed(node, m[5], location(m[1], m[2]))
				state.Remove(node)
				state.ClearCurrent()
			}
			continue
		}

		if m := qualifiedSkipped.FindStringSubmatch(line); m != nil {
			if node := state.FindExact(qualifiedID(m[3], m[4])); node != nil {
				sink.Skipped(node)
				state.Remove(node)
				state.ClearCurrent()
			}
			continue
		}
	}
}

// qualifiedID maps "Target.Class" plus a method to the tree id
// "Target/Class/method". The target may itself contain dots; the class name
// follows the last one.
func qualifiedID(qualified, method string) string {
	idx := strings.LastIndex(qualified, ".")
	if idx < 0 {
		return qualified + "/" + method
	}
	return qualified[:idx] + "/" + qualified[idx+1:] + "/" + method
}

// toMilliseconds converts the grammar's seconds value to whole milliseconds.
func toMilliseconds(seconds string) int64 {
	value, err := strconv.ParseFloat(seconds, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(value * 1000))
}

// location converts the grammar's 1-based line to a 0-based source location.
func location(file, line string) *domain.Location {
	row, err := strconv.Atoi(line)
	if err != nil {
		return nil
	}
	return &domain.Location{File: file, Line: row - 1, Column: 0}
}
