package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"stp/internal/domain"
)

// Progress is the live progress display updated as outcomes arrive.
// Implemented by ui.ProgressBar.
type Progress interface {
	Update(completed, passed, failed, skipped int)
	Finish()
}

// Console prints outcomes as they happen. Raw process output is echoed only
// when Echo is set; failures always print their message.
type Console struct {
	out      io.Writer
	progress Progress
	echo     bool

	mu        sync.Mutex
	passed    int
	failed    int
	skipped   int
	completed int
}

// NewConsole creates a console sink writing to out.
func NewConsole(out io.Writer, echo bool) *Console {
	return &Console{out: out, echo: echo}
}

// SetProgress sets the live progress display for the run.
func (c *Console) SetProgress(progress Progress) {
	c.progress = progress
}

func (c *Console) Enqueued(item *domain.TestNode) {}

func (c *Console) Started(item *domain.TestNode) {}

func (c *Console) Passed(item *domain.TestNode, durationMS int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passed++
	c.completed++
	c.updateProgress()
}

func (c *Console) Failed(item *domain.TestNode, message string, loc *domain.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed++
	c.completed++
	c.updateProgress()

	line := color.RedString("✗ %s", item.ID)
	if loc != nil {
		line += fmt.Sprintf(" (%s:%d)", loc.File, loc.Line+1)
	}
	fmt.Fprintf(c.out, "%s\n  %s\n", line, message)
}

func (c *Console) Skipped(item *domain.TestNode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped++
	c.completed++
	c.updateProgress()
}

func (c *Console) AppendOutput(text string) {
	if !c.echo {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, text)
}

func (c *Console) End() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.progress != nil {
		c.progress.Finish()
	}
}

func (c *Console) updateProgress() {
	if c.progress != nil {
		c.progress.Update(c.completed, c.passed, c.failed, c.skipped)
	}
}
