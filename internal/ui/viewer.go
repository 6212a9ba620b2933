package ui

import "stp/internal/domain"

// Viewer displays run failures in an interactive TUI
type Viewer interface {
	View(summary *domain.RunSummary) error
}
