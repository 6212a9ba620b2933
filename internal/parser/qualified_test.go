package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stp/internal/domain"
	"stp/internal/report"
)

func qualifiedState() (*RunState, *report.Recorder) {
	target := domain.NewNode("MyTests", "MyTests")
	fooTests := target.AddChild("MyTests/FooTests", "FooTests")
	fooTests.AddChild("MyTests/FooTests/testBar", "testBar")
	fooTests.AddChild("MyTests/FooTests/testBaz", "testBaz")
	return NewRunState(fooTests.Children), report.NewRecorder()
}

func TestQualified_Passed(t *testing.T) {
	state, sink := qualifiedState()
	p := &QualifiedParser{}

	p.Parse("Test Case '-[MyTests.FooTests testBar]' passed (0.012 seconds)\n", state, sink)

	kind, ok := sink.Outcome("MyTests/FooTests/testBar")
	require.True(t, ok)
	assert.Equal(t, domain.OutcomePassed, kind)

	ms, ok := sink.Duration("MyTests/FooTests/testBar")
	require.True(t, ok)
	assert.Equal(t, int64(12), ms)

	assert.Nil(t, state.FindExact("MyTests/FooTests/testBar"), "passed test should leave the pending set")
	assert.NotNil(t, state.FindExact("MyTests/FooTests/testBaz"))
}

func TestQualified_PassedTwiceIsANoOp(t *testing.T) {
	state, sink := qualifiedState()
	p := &QualifiedParser{}

	line := "Test Case '-[MyTests.FooTests testBar]' passed (0.012 seconds)\n"
	p.Parse(line, state, sink)
	before := len(state.Pending())
	p.Parse(line, state, sink)

	assert.Equal(t, before, len(state.Pending()), "second occurrence must not remove anything")
}

func TestQualified_StartedSetsCurrent(t *testing.T) {
	state, sink := qualifiedState()
	p := &QualifiedParser{}

	p.Parse("Test Case '-[MyTests.FooTests testBar]' started\n", state, sink)

	require.NotNil(t, state.Current())
	assert.Equal(t, "MyTests/FooTests/testBar", state.Current().ID)
	kind, _ := sink.Outcome("MyTests/FooTests/testBar")
	assert.Equal(t, domain.OutcomeStarted, kind)
}

func TestQualified_FailedHasZeroBasedLocation(t *testing.T) {
	state, sink := qualifiedState()
	p := &QualifiedParser{}

	p.Parse("Test Case '-[MyTests.FooTests testBar]' started\n", state, sink)
	p.Parse("/repo/Tests/FooTests.swift:10: error: -[MyTests.FooTests testBar] : XCTAssertTrue failed\n", state, sink)

	failures := sink.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "MyTests/FooTests/testBar", failures[0].TestID)
	assert.Equal(t, "XCTAssertTrue failed", failures[0].Message)
	assert.Equal(t, "/repo/Tests/FooTests.swift", failures[0].File)
	assert.Equal(t, 9, failures[0].Line)
	assert.Nil(t, state.Current(), "terminal outcome must clear the cursor")
}

func TestQualified_Skipped(t *testing.T) {
	state, sink := qualifiedState()
	p := &QualifiedParser{}

	p.Parse("/repo/Tests/FooTests.swift:4: -[MyTests.FooTests testBaz] : Test skipped\n", state, sink)

	kind, ok := sink.Outcome("MyTests/FooTests/testBaz")
	require.True(t, ok)
	assert.Equal(t, domain.OutcomeSkipped, kind)
	assert.Nil(t, state.FindExact("MyTests/FooTests/testBaz"))
}

func TestQualified_EchoesChunkVerbatim(t *testing.T) {
	state, sink := qualifiedState()
	p := &QualifiedParser{}

	chunk := "noise line\nTest Case '-[MyTests.FooTests testBar]' passed (1 second)\npartial tail"
	p.Parse(chunk, state, sink)

	assert.Equal(t, chunk, sink.Output())
}

func TestQualified_UnknownTestIsIgnored(t *testing.T) {
	state, sink := qualifiedState()
	p := &QualifiedParser{}

	p.Parse("Test Case '-[Other.Tests testNope]' passed (0.5 seconds)\n", state, sink)

	assert.Len(t, state.Pending(), 2)
	_, ok := sink.Outcome("Other/Tests/testNope")
	assert.False(t, ok)
}
