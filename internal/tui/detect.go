package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for a run.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and redirected output.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is watching the terminal.
	ModeInteractive
)

// NonInteractiveEnv forces plain output when set to "1".
const NonInteractiveEnv = "CSVLOAD_NON_INTERACTIVE"

// DetectMode determines whether progress should be rendered as a live spinner.
//
// Returns ModeNonInteractive if:
//   - CSVLOAD_NON_INTERACTIVE=1 is set
//   - CI is set
//   - NO_COLOR is set
//   - stderr is not a terminal
func DetectMode() Mode {
	if os.Getenv(NonInteractiveEnv) == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if !IsTerminal(os.Stderr) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ColorEnabled reports whether styled output should be written to f.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(f)
}
