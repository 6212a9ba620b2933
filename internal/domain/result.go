package domain

// OutcomeKind is the reported state of a tracked test. Every tracked test
// receives exactly one terminal outcome per run or stays enqueued.
type OutcomeKind int

const (
	OutcomeEnqueued OutcomeKind = iota
	OutcomeStarted
	OutcomePassed
	OutcomeFailed
	OutcomeSkipped
)

// String returns the lowercase name of the outcome.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeEnqueued:
		return "enqueued"
	case OutcomeStarted:
		return "started"
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	}
	return "unknown"
}

// Terminal reports whether the outcome is final for a run.
func (k OutcomeKind) Terminal() bool {
	return k == OutcomePassed || k == OutcomeFailed || k == OutcomeSkipped
}

// Location is a zero-based source position attached to a failure.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// TestFailure is a failed test as persisted for the failures viewer.
type TestFailure struct {
	TestID   string `json:"test_id"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Resolved bool   `json:"resolved,omitempty"` // toggled from the failures viewer
}

// RunMeta contains summary statistics about a test run.
type RunMeta struct {
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	SkippedTests    int     `json:"skipped_tests"`
	EnqueuedTests   int     `json:"enqueued_tests"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunSummary is the complete persisted output of one run.
type RunSummary struct {
	Meta     RunMeta       `json:"meta"`
	Failures []TestFailure `json:"failures"`
}
