package report

import (
	"strings"
	"sync"
	"time"

	"stp/internal/domain"
)

// Recorder collects outcomes and raw output for one run. It backs the saved
// run summary and the exit-code decision, and doubles as the sink fake in
// tests across the repo.
type Recorder struct {
	mu        sync.Mutex
	outcomes  map[string]domain.OutcomeKind
	durations map[string]int64
	leaves    map[string]bool
	failures  []domain.TestFailure
	output    strings.Builder
	started   time.Time
	ends      int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		outcomes:  make(map[string]domain.OutcomeKind),
		durations: make(map[string]int64),
		leaves:    make(map[string]bool),
		started:   time.Now(),
	}
}

func (r *Recorder) Enqueued(item *domain.TestNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[item.ID] = domain.OutcomeEnqueued
	r.leaves[item.ID] = len(item.Children) == 0
}

func (r *Recorder) Started(item *domain.TestNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[item.ID] = domain.OutcomeStarted
}

func (r *Recorder) Passed(item *domain.TestNode, durationMS int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[item.ID] = domain.OutcomePassed
	r.durations[item.ID] = durationMS
}

func (r *Recorder) Failed(item *domain.TestNode, message string, loc *domain.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[item.ID] = domain.OutcomeFailed
	failure := domain.TestFailure{TestID: item.ID, Message: message}
	if loc != nil {
		failure.File = loc.File
		failure.Line = loc.Line
	}
	r.failures = append(r.failures, failure)
}

func (r *Recorder) Skipped(item *domain.TestNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[item.ID] = domain.OutcomeSkipped
}

func (r *Recorder) AppendOutput(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.output.WriteString(text)
}

func (r *Recorder) End() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends++
}

// Outcome returns the recorded outcome for a test id.
func (r *Recorder) Outcome(id string) (domain.OutcomeKind, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kind, ok := r.outcomes[id]
	return kind, ok
}

// Duration returns the recorded duration in milliseconds for a passed test.
func (r *Recorder) Duration(id string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ms, ok := r.durations[id]
	return ms, ok
}

// Failures returns the recorded failures in report order.
func (r *Recorder) Failures() []domain.TestFailure {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TestFailure, len(r.failures))
	copy(out, r.failures)
	return out
}

// Output returns everything appended so far.
func (r *Recorder) Output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.output.String()
}

// Ends returns how many times End was invoked.
func (r *Recorder) Ends() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ends
}

// Summary converts the recorded run into its persisted form.
func (r *Recorder) Summary() *domain.RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	meta := domain.RunMeta{Timestamp: time.Now().Format(time.RFC3339)}
	for id, kind := range r.outcomes {
		// A tracked case whose methods resolved individually never receives
		// its own outcome; it is bookkeeping, not a missing test.
		if !kind.Terminal() && !r.leaves[id] {
			continue
		}
		meta.TotalTests++
		switch kind {
		case domain.OutcomePassed:
			meta.PassedTests++
		case domain.OutcomeFailed:
			meta.FailedTests++
		case domain.OutcomeSkipped:
			meta.SkippedTests++
		default:
			meta.EnqueuedTests++
		}
	}
	elapsed := time.Since(r.started)
	meta.Duration = elapsed.String()
	meta.DurationSeconds = elapsed.Seconds()

	failures := make([]domain.TestFailure, len(r.failures))
	copy(failures, r.failures)
	return &domain.RunSummary{Meta: meta, Failures: failures}
}
