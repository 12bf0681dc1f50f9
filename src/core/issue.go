// Package core contains the shared types and configuration for eslint-mate.
package core

import (
	"fmt"
	"io"
)

// An Issue is a single finding reported by ESLint.
// Issues are immutable once parsed; their order matches the order ESLint reported them in.
type Issue struct {
	// Line and Character are 1-based positions in the original document
	// (i.e. after any embedded-markup offset has been applied).
	Line      int
	Character int
	// Reason is the human-readable message for this finding.
	Reason string
	// Shortname is the identifier of the rule that produced this finding, if any.
	Shortname string
	IsError   bool
	IsWarning bool
}

// Label returns the message used to annotate this issue in the editor,
// which is the reason with the rule name appended in parentheses if present.
func (i Issue) Label() string {
	if i.Shortname != "" {
		return fmt.Sprintf("%s (%s)", i.Reason, i.Shortname)
	}
	return i.Reason
}

// Position returns the issue's position formatted as line:character.
func (i Issue) Position() string {
	return fmt.Sprintf("%d:%d", i.Line, i.Character)
}

// A ValidationContext bundles the parameters for one validation run.
// It's constructed once from the environment and never persisted.
type ValidationContext struct {
	// Filename is the path of the file being checked. Empty for unsaved buffers.
	Filename string
	// WorkingDir is the directory ESLint runs in, so it finds project-local config.
	WorkingDir string
	// InputIsHTML is true when the buffer is markup with embedded scripts
	// rather than a pure JavaScript document.
	InputIsHTML bool
	// LineOffset is added to reported line numbers to map positions back to
	// the containing document when only a region of it was checked.
	LineOffset int
	// Stdin supplies the buffer content for unsaved or embedded-markup runs.
	Stdin io.Reader
}

// A ValidationFailure indicates that ESLint could not run at all, as opposed
// to running successfully and finding zero issues.
type ValidationFailure struct {
	// Message describes what went wrong.
	Message string
	// SearchPath is the filesystem path involved when the failure concerns
	// locating ESLint's configuration. Empty when not applicable.
	SearchPath string
}

// Error implements the error interface.
func (f *ValidationFailure) Error() string {
	return f.Message
}
