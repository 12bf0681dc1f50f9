// Utilities for reading the eslint-mate config file and the TextMate environment.

package core

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	cli "github.com/peterebden/go-cli-init/v5/flags"
	"github.com/please-build/gcfg"
	"gopkg.in/op/go-logging.v1"
)

var log = logging.MustGetLogger("core")

// ConfigFileName is the name of the optional per-project config file.
const ConfigFileName = ".eslintmate"

// DefaultHint is the line appended to a non-empty tooltip summary.
const DefaultHint = "Press Shift-Ctrl-V to view the full report."

// UnsavedFilename is displayed in reports when the buffer has never been saved.
const UnsavedFilename = "(current unsaved file)"

// An Environment is the set of TextMate-provided variables the tool consumes.
// The fields double as flags so any of them can be overridden on the command line.
type Environment struct {
	FilePath         string `long:"filepath" env:"TM_FILEPATH" description:"Path of the file being checked. Unset for unsaved buffers."`
	Scope            string `long:"scope" env:"TM_SCOPE" description:"TextMate scope of the current document."`
	InputStartLine   int    `long:"input_start_line" env:"TM_INPUT_START_LINE" default:"1" description:"First line of the checked region within its containing document."`
	Directory        string `long:"directory" env:"TM_DIRECTORY" description:"Directory containing the current file."`
	ProjectDirectory string `long:"project_directory" env:"TM_PROJECT_DIRECTORY" description:"Root of the current project."`
	Mate             string `long:"mate" env:"TM_MATE" description:"Path to the mate helper used to update gutter marks."`
	BundleSupport    string `long:"bundle_support" env:"TM_BUNDLE_SUPPORT" description:"Bundle support directory, used to resolve report assets."`
	ESLintCommand    string `long:"eslint" env:"TM_JAVASCRIPT_ESLINT_ESLINT" description:"ESLint command to run, overriding the default."`
}

// WorkingDir returns the directory ESLint should run in; TextMate supplies the
// file's own directory where possible, falling back to the project root.
func (env *Environment) WorkingDir() string {
	if env.Directory != "" {
		return env.Directory
	}
	return env.ProjectDirectory
}

// LineOffset returns the offset to add to reported line numbers so they map
// back into the containing document.
func (env *Environment) LineOffset() int {
	if env.InputStartLine > 1 {
		return env.InputStartLine - 1
	}
	return 0
}

// InputIsHTML returns true if the current document is markup with embedded
// scripts rather than a pure JavaScript source file.
func (env *Environment) InputIsHTML() bool {
	return !strings.HasPrefix(env.Scope, "source.js")
}

// Context constructs the validation context for one run, reading buffer
// content from the given reader when it's needed.
func (env *Environment) Context(stdin io.Reader) *ValidationContext {
	return &ValidationContext{
		Filename:    env.FilePath,
		WorkingDir:  env.WorkingDir(),
		InputIsHTML: env.InputIsHTML(),
		LineOffset:  env.LineOffset(),
		Stdin:       stdin,
	}
}

// A Config is the resolved configuration for one run. The sections mirror the
// optional .eslintmate file in the project directory; the environment's ESLint
// override takes precedence over the file.
type Config struct {
	ESLint struct {
		Command string
		Timeout cli.Duration
	}
	Report struct {
		Hint string
	}
}

// DefaultConfiguration returns the configuration before any file or
// environment overrides are applied.
func DefaultConfiguration() *Config {
	config := &Config{}
	config.ESLint.Command = "eslint"
	config.Report.Hint = DefaultHint
	return config
}

// ReadConfig reads configuration for a run rooted at the environment's
// working directory. A missing config file is not an error; a malformed one is.
func ReadConfig(env *Environment) (*Config, error) {
	config := DefaultConfiguration()
	if dir := env.WorkingDir(); dir != "" {
		if err := readConfigFile(config, filepath.Join(dir, ConfigFileName)); err != nil {
			return nil, err
		}
	}
	if env.ESLintCommand != "" {
		config.ESLint.Command = env.ESLintCommand
	}
	return config, nil
}

func readConfigFile(config *Config, filename string) error {
	if err := gcfg.ReadFileInto(config, filename); err != nil && os.IsNotExist(err) {
		return nil // It's not an error to not have the file at all.
	} else if err != nil {
		return err
	}
	log.Debug("Read config from %s", filename)
	return nil
}

// ESLintArgv returns the base argv for invoking ESLint. The configured command
// may contain arguments of its own (e.g. "npx eslint") so it's split
// shell-style before use.
func (config *Config) ESLintArgv() ([]string, error) {
	return shlex.Split(config.ESLint.Command)
}
