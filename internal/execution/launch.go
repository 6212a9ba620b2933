package execution

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LaunchConfig describes how to start the test binary for one run.
type LaunchConfig struct {
	Program string
	Args    []string
	Dir     string
	Env     []string

	// SplitStdout sends the binary's stdout to OutputPath instead of the live
	// stream; results are then parsed from stderr (or from the file, in debug
	// runs). Interleaving the streams reorders output relative to source
	// position, so debug runs and the unqualified platform always split.
	SplitStdout bool
	OutputPath  string
}

// NewLaunchConfig builds the platform launch configuration for the test
// binary in a package folder. An error means no configuration is resolvable
// and the run must end early without reporting.
func NewLaunchConfig(goos, dir string, filterArgs []string, debug bool) (*LaunchConfig, error) {
	binary, err := TestBinaryPath(goos, dir)
	if err != nil {
		return nil, err
	}

	cfg := &LaunchConfig{Program: binary, Dir: dir}

	if goos == "darwin" {
		// XCTest takes one combined filter expression.
		if len(filterArgs) > 0 {
			cfg.Args = []string{"-XCTest", strings.Join(filterArgs, ",")}
		}
		cfg.SplitStdout = debug
	} else {
		if len(filterArgs) > 0 {
			cfg.Args = []string{strings.Join(filterArgs, ",")}
		}
		cfg.SplitStdout = true
	}

	if cfg.SplitStdout {
		out, err := os.CreateTemp("", "stp-output-*.log")
		if err != nil {
			return nil, fmt.Errorf("create output buffer: %w", err)
		}
		cfg.OutputPath = out.Name()
		if err := out.Close(); err != nil {
			return nil, fmt.Errorf("create output buffer: %w", err)
		}
	}

	return cfg, nil
}

// TestBinaryPath locates the built test bundle under .build/debug. The build
// must have completed before this is called.
func TestBinaryPath(goos, dir string) (string, error) {
	bundles, err := filepath.Glob(filepath.Join(dir, ".build", "debug", "*.xctest"))
	if err != nil || len(bundles) == 0 {
		return "", fmt.Errorf("no test bundle under %s", filepath.Join(dir, ".build", "debug"))
	}
	bundle := bundles[0]

	if goos != "darwin" {
		return bundle, nil
	}

	// On darwin the bundle is a directory wrapping the executable.
	name := strings.TrimSuffix(filepath.Base(bundle), ".xctest")
	executable := filepath.Join(bundle, "Contents", "MacOS", name)
	if _, err := os.Stat(executable); err != nil {
		return "", fmt.Errorf("test bundle %s has no executable: %w", bundle, err)
	}
	return executable, nil
}
