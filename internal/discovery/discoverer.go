package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"stp/internal/domain"
)

// Discoverer builds the test tree for a package: one root per test target,
// class nodes beneath it, method leaves beneath those. Node ids join the
// levels with "/".
type Discoverer struct {
	scanner *Scanner
	parser  *Parser
}

// NewDiscoverer creates a discoverer with default scanning rules.
func NewDiscoverer() *Discoverer {
	return &Discoverer{
		scanner: NewScanner([]string{".build"}),
		parser:  NewParser(),
	}
}

// Discover scans every target's sources and returns the target roots in
// manifest order. Targets whose directory is missing are skipped rather than
// failing the whole package.
func (d *Discoverer) Discover(root string, targets []domain.Target) ([]*domain.TestNode, error) {
	var roots []*domain.TestNode

	for _, target := range targets {
		node, err := d.discoverTarget(root, target)
		if err != nil {
			return nil, err
		}
		if node != nil {
			roots = append(roots, node)
		}
	}

	return roots, nil
}

func (d *Discoverer) discoverTarget(root string, target domain.Target) (*domain.TestNode, error) {
	dir := target.Path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}

	sources := d.targetSources(dir, target)
	if len(sources) == 0 {
		scanned, err := d.scanner.Scan(dir)
		if err != nil {
			// A target without a source directory contributes nothing.
			return nil, nil
		}
		sources = scanned
	}

	node := domain.NewNode(target.Name, target.Name)
	for _, source := range sources {
		classes, err := d.parser.FindTestClasses(source)
		if err != nil {
			return nil, err
		}
		for _, class := range classes {
			classNode := node.AddChild(node.ID+"/"+class.Name, class.Name)
			for _, method := range class.Methods {
				classNode.AddChild(classNode.ID+"/"+method, method)
			}
		}
	}

	if len(node.Children) == 0 {
		return nil, nil
	}
	return node, nil
}

// targetSources resolves the manifest's per-target source list, keeping only
// files that exist. Order is normalized so repeated runs produce the same
// tree.
func (d *Discoverer) targetSources(dir string, target domain.Target) []string {
	var sources []string
	for _, rel := range target.Sources {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			sources = append(sources, path)
		}
	}
	sort.Strings(sources)
	return sources
}
