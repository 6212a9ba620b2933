package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Package settings
	ProjectPath string

	// Toolchain settings
	SwiftPath    string
	DebuggerPath string
	DebuggerArgs []string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	MaxOutputBytes int64

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath  string
	SwiftPath    string
	Filter       string
	Exclude      string
	Debug        bool
	Verbose      bool
	OpenFailures bool
	Methods      bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		SwiftPath:      DefaultSwiftPath,
		DebuggerPath:   DefaultDebuggerPath,
		DebuggerArgs:   append([]string{}, DefaultDebuggerArgs...),
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		MaxOutputBytes: DefaultMaxOutputBytes,
	}
}

// Load creates a config, applies a .env file from the package folder when
// present, then applies flag overrides on top.
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.ProjectPath != "" {
		cfg.ProjectPath = flags.ProjectPath
	}

	// Optional; a package without a .env file uses defaults.
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))
	cfg.applyEnv()

	if flags.SwiftPath != "" {
		cfg.SwiftPath = flags.SwiftPath
	}

	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STP_SWIFT"); v != "" {
		c.SwiftPath = v
	}
	if v := os.Getenv("STP_DEBUGGER"); v != "" {
		c.DebuggerPath = v
	}
	if v := os.Getenv("STP_OUTPUT_DIR"); v != "" {
		c.OutputJSONDir = v
	}
	if v := os.Getenv("STP_OUTPUT_FILE"); v != "" {
		c.OutputJSONFile = v
	}
	if v := os.Getenv("STP_MAX_OUTPUT_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxOutputBytes = n
		}
	}
}

// GetProjectPath returns the package folder as an absolute path.
func (c *Config) GetProjectPath() string {
	if abs, err := filepath.Abs(c.ProjectPath); err == nil {
		return abs
	}
	return c.ProjectPath
}

// GetOutputPath returns the full path to the output JSON file (under the
// package so run and failures use the same file).
// Resolves to an absolute path so both commands read/write the same file
// regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
