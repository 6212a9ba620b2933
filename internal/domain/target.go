package domain

import "path/filepath"

// Target is a test target from the package manifest. Path is relative to the
// package root; Sources are relative to Path.
type Target struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Sources []string `json:"sources"`
}

// ContainsFile reports whether the given file path (absolute or root-relative)
// belongs to the target's declared sources. Sources listed relative to the
// package root are accepted too, since manifests are inconsistent about it.
func (t Target) ContainsFile(root, file string) bool {
	candidates := []string{
		relPath(filepath.Join(root, t.Path), file),
		relPath(root, file),
	}
	for _, source := range t.Sources {
		for _, candidate := range candidates {
			if candidate != "" && filepath.ToSlash(candidate) == filepath.ToSlash(source) {
				return true
			}
		}
	}
	return false
}

func relPath(base, file string) string {
	rel, err := filepath.Rel(base, file)
	if err != nil {
		return ""
	}
	return rel
}
