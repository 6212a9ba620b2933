package report

import "stp/internal/domain"

// Sink receives per-test outcomes and raw process output for one run. The
// orchestrator guarantees End is called exactly once per run; AppendOutput may
// be called any number of times.
type Sink interface {
	Enqueued(item *domain.TestNode)
	Started(item *domain.TestNode)
	Passed(item *domain.TestNode, durationMS int64)
	Failed(item *domain.TestNode, message string, loc *domain.Location)
	Skipped(item *domain.TestNode)
	AppendOutput(text string)
	End()
}

// Multi fans every sink call out to all given sinks, in order.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Enqueued(item *domain.TestNode) {
	for _, s := range m {
		s.Enqueued(item)
	}
}

func (m multiSink) Started(item *domain.TestNode) {
	for _, s := range m {
		s.Started(item)
	}
}

func (m multiSink) Passed(item *domain.TestNode, durationMS int64) {
	for _, s := range m {
		s.Passed(item, durationMS)
	}
}

func (m multiSink) Failed(item *domain.TestNode, message string, loc *domain.Location) {
	for _, s := range m {
		s.Failed(item, message, loc)
	}
}

func (m multiSink) Skipped(item *domain.TestNode) {
	for _, s := range m {
		s.Skipped(item)
	}
}

func (m multiSink) AppendOutput(text string) {
	for _, s := range m {
		s.AppendOutput(text)
	}
}

func (m multiSink) End() {
	for _, s := range m {
		s.End()
	}
}
