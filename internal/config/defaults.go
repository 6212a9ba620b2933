package config

const (
	// DefaultProjectPath is the default package folder
	DefaultProjectPath = "."
	// DefaultSwiftPath is the default swift executable
	DefaultSwiftPath = "swift"
	// DefaultDebuggerPath is the default debugger executable
	DefaultDebuggerPath = "lldb"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".build"
	// DefaultMaxOutputBytes caps how much process output is kept per run
	DefaultMaxOutputBytes = 16 << 20
)

// DefaultDebuggerArgs run the program immediately and quit the debugger with
// the program's exit status once it finishes.
var DefaultDebuggerArgs = []string{"--batch", "-o", "run", "--"}
