package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"stp/internal/domain"
)

// describedTarget mirrors one entry of `swift package describe --type json`.
type describedTarget struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Path    string   `json:"path"`
	Sources []string `json:"sources"`
}

type describeOutput struct {
	Name    string            `json:"name"`
	Targets []describedTarget `json:"targets"`
}

// Loader resolves a package's test targets through the Swift toolchain.
type Loader struct {
	Swift  string // swift executable, "swift" if empty
	logger zerolog.Logger
}

// NewLoader creates a manifest loader.
func NewLoader(swift string, logger zerolog.Logger) *Loader {
	return &Loader{Swift: swift, logger: logger}
}

// Load runs `swift package describe --type json` in the package folder and
// returns its test targets.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Target, error) {
	swift := l.Swift
	if swift == "" {
		swift = "swift"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, swift, "package", "describe", "--type", "json")
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	l.logger.Debug().Str("dir", dir).Msg("describing package")

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("describe package: %w: %s", err, stderr.String())
		}
		return nil, fmt.Errorf("describe package: %w", err)
	}

	return Decode(&stdout)
}

// LoadFile reads a previously saved describe dump.
func LoadFile(path string) ([]domain.Target, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file)
}

// Decode parses describe output and keeps only the test targets, in manifest
// order.
func Decode(r io.Reader) ([]domain.Target, error) {
	var described describeOutput
	if err := json.NewDecoder(r).Decode(&described); err != nil {
		return nil, fmt.Errorf("decode package description: %w", err)
	}

	var targets []domain.Target
	for _, target := range described.Targets {
		if target.Type != "test" {
			continue
		}
		targets = append(targets, domain.Target{
			Name:    target.Name,
			Path:    target.Path,
			Sources: target.Sources,
		})
	}
	return targets, nil
}
