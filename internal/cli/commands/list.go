package commands

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stp/internal/config"
	"stp/internal/discovery"
	"stp/internal/domain"
	"stp/internal/manifest"
	"stp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config     *config.Config
	logger     zerolog.Logger
	discoverer *discovery.Discoverer
	filter     *discovery.Filter
	formatter  *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	logger zerolog.Logger,
	discoverer *discovery.Discoverer,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:     cfg,
		logger:     logger,
		discoverer: discoverer,
		filter:     filter,
		formatter:  formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	root := lc.config.GetProjectPath()

	loader := manifest.NewLoader(lc.config.SwiftPath, lc.logger)
	targets, err := loader.Load(cmd.Context(), root)
	if err != nil {
		return err
	}

	roots, err := lc.discoverer.Discover(root, targets)
	if err != nil {
		return err
	}

	if pattern := lc.config.Flags.Filter; pattern != "" {
		roots = pruneToMatches(roots, lc.filter.Select(roots, pattern))
	}

	if len(roots) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	lc.formatter.PrintTestTree(roots, lc.config.Flags.Methods)
	return nil
}

// pruneToMatches keeps only the target roots that contain at least one
// selected node.
func pruneToMatches(roots, selected []*domain.TestNode) []*domain.TestNode {
	keep := make(map[*domain.TestNode]bool)
	for _, node := range selected {
		keep[node.Root()] = true
	}

	var pruned []*domain.TestNode
	for _, root := range roots {
		if keep[root] {
			pruned = append(pruned, root)
		}
	}
	return pruned
}
