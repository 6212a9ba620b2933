package cli

import "stp/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath:  f.ProjectPath,
		SwiftPath:    f.SwiftPath,
		Filter:       f.Filter,
		Exclude:      f.Exclude,
		Debug:        f.Debug,
		Verbose:      f.Verbose,
		OpenFailures: f.OpenFailures,
		Methods:      f.Methods,
	}
}
