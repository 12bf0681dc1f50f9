// Package eslint invokes ESLint as a subprocess and interprets its results.
package eslint

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"time"

	"gopkg.in/op/go-logging.v1"

	"github.com/tmbundle/eslint-mate/src/core"
	"github.com/tmbundle/eslint-mate/src/process"
)

var log = logging.MustGetLogger("eslint")

// A Validator runs ESLint for us.
type Validator struct {
	config   *core.Config
	executor *process.Executor
}

// NewValidator returns a new Validator using the given configuration.
func NewValidator(config *core.Config, executor *process.Executor) *Validator {
	return &Validator{
		config:   config,
		executor: executor,
	}
}

// Validate runs ESLint as described by the given context and returns the
// issues it found, in the order it reported them. The returned error is a
// *core.ValidationFailure when ESLint itself could not run or could not
// resolve its configuration; finding issues is not an error.
func (v *Validator) Validate(ctx *core.ValidationContext) ([]core.Issue, error) {
	argv, err := v.argv()
	if err != nil {
		return nil, err
	}
	argv = append(argv, "--format", "json")
	var stdin io.Reader
	if ctx.InputIsHTML {
		// Only the script regions go to ESLint; the extraction keeps line
		// numbers intact and the context's offset maps them back to the
		// containing document.
		src, err := ExtractScripts(ctx.Stdin)
		if err != nil {
			return nil, &core.ValidationFailure{Message: fmt.Sprintf("Unable to extract scripts from markup: %s", err)}
		}
		argv = appendStdinArgs(argv, ctx.Filename)
		stdin = bytes.NewReader(src)
	} else if ctx.Filename == "" {
		argv = appendStdinArgs(argv, "")
		stdin = ctx.Stdin
	} else {
		argv = append(argv, ctx.Filename)
	}

	log.Debug("Running %s in %s", argv, ctx.WorkingDir)
	out, combined, err := v.executor.ExecWithTimeout(ctx.WorkingDir, stdin, v.timeout(), argv)
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			// ESLint never ran at all.
			return nil, &core.ValidationFailure{Message: fmt.Sprintf("Unable to run ESLint: %s", err)}
		}
		// A nonzero exit still produces a result list when the failure is
		// lint findings rather than a tooling problem.
		if issues, err := parseResults(out, ctx.LineOffset); err == nil {
			return issues, nil
		}
		return nil, newFailure(string(combined))
	}
	issues, err := parseResults(out, ctx.LineOffset)
	if err != nil {
		return nil, &core.ValidationFailure{Message: fmt.Sprintf("Unable to parse ESLint output: %s", err)}
	}
	return issues, nil
}

// Fix runs ESLint's autofix against the current file, modifying it in place.
// It deliberately does nothing for unsaved buffers, where there's no file to
// write back to, and for markup-embedded scripts, where region boundaries
// make in-place edits unsafe.
func (v *Validator) Fix(ctx *core.ValidationContext) error {
	if ctx.Filename == "" {
		log.Debug("Not fixing, file has not been saved")
		return nil
	} else if ctx.InputIsHTML {
		log.Debug("Not fixing, document is not pure JavaScript")
		return nil
	}
	argv, err := v.argv()
	if err != nil {
		return err
	}
	argv = append(argv, "--fix", ctx.Filename)
	log.Debug("Running %s in %s", argv, ctx.WorkingDir)
	if _, combined, err := v.executor.ExecWithTimeout(ctx.WorkingDir, nil, v.timeout(), argv); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			// Exit code 1 means unfixable issues remain, which is fine here.
			return nil
		} else if ok {
			return newFailure(string(combined))
		}
		return &core.ValidationFailure{Message: fmt.Sprintf("Unable to run ESLint: %s", err)}
	}
	return nil
}

// argv returns the base command line for an ESLint invocation.
func (v *Validator) argv() ([]string, error) {
	argv, err := v.config.ESLintArgv()
	if err != nil {
		return nil, &core.ValidationFailure{Message: fmt.Sprintf("Invalid ESLint command %q: %s", v.config.ESLint.Command, err)}
	} else if len(argv) == 0 {
		return nil, &core.ValidationFailure{Message: "No ESLint command is configured"}
	}
	return argv, nil
}

func (v *Validator) timeout() time.Duration {
	return time.Duration(v.config.ESLint.Timeout)
}

// appendStdinArgs adds the arguments that make ESLint read from stdin,
// keeping the original filename attached when there is one so that its
// configuration cascade still applies.
func appendStdinArgs(argv []string, filename string) []string {
	argv = append(argv, "--stdin")
	if filename != "" {
		argv = append(argv, "--stdin-filename", filename)
	}
	return argv
}
