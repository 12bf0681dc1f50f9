// eslint-mate is the command behind the JavaScript ESLint bundle for TextMate.
// It runs ESLint against the current buffer and feeds the results back to the
// editor as a tooltip summary plus gutter marks, a full HTML report, or an
// in-place autofix, depending on how it's invoked.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/peterebden/go-cli-init/v5/flags"
	cli "github.com/peterebden/go-cli-init/v5/logging"
	"gopkg.in/op/go-logging.v1"

	"github.com/tmbundle/eslint-mate/src/core"
	"github.com/tmbundle/eslint-mate/src/eslint"
	"github.com/tmbundle/eslint-mate/src/gutter"
	"github.com/tmbundle/eslint-mate/src/process"
	"github.com/tmbundle/eslint-mate/src/report"
)

var log = logging.MustGetLogger("eslint-mate")

var opts = struct {
	Usage     string
	Verbosity cli.Verbosity    `short:"v" long:"verbosity" default:"warning" description:"Verbosity of output (higher number = more output)"`
	HTML      bool             `long:"html" description:"Write a full HTML report to stdout instead of the tooltip summary."`
	Fix       bool             `long:"fix" description:"Run ESLint's autofix against the current file instead of reporting."`
	Env       core.Environment `group:"Options controlling the TextMate environment"`
}{
	Usage: `
eslint-mate wires ESLint into TextMate. It is normally invoked by the bundle's
commands rather than by hand, and picks up everything it needs from the
TextMate environment variables.

Without flags it prints a short summary suitable for a tooltip and refreshes
the gutter marks on the current file. With --html it writes a full report page
to stdout, and with --fix it runs ESLint's autofix against the saved file.

All output the editor consumes goes to stdout; logging goes to stderr.
`,
}

func main() {
	flags.ParseFlagsOrDie("eslint-mate", &opts, nil)
	cli.InitLogging(opts.Verbosity)
	env := &opts.Env
	config, err := core.ReadConfig(env)
	if err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}
	validator := eslint.NewValidator(config, process.New())
	// Modes are mutually exclusive; --html wins over --fix.
	if opts.HTML {
		htmlReport(validator, env)
	} else if opts.Fix {
		fix(validator, env)
	} else {
		quiet(validator, env, config)
	}
}

// htmlReport runs a validation and writes the full report page to stdout.
// When the run fails outright the error page becomes the whole output.
func htmlReport(validator *eslint.Validator, env *core.Environment) {
	if env.BundleSupport == "" {
		log.Fatalf("TM_BUNDLE_SUPPORT is not set, cannot resolve report assets")
	}
	issues, err := validator.Validate(env.Context(os.Stdin))
	if err != nil {
		var failure *core.ValidationFailure
		if errors.As(err, &failure) {
			if err := report.HTMLFailure(os.Stdout, env, failure); err != nil {
				log.Fatalf("Failed to render error page: %s", err)
			}
			return
		}
		log.Fatalf("%s", err)
	}
	if err := report.HTML(os.Stdout, env, issues); err != nil {
		log.Fatalf("Failed to render report: %s", err)
	}
}

// quiet runs a validation, prints the tooltip summary and refreshes the
// gutter marks on the current file.
func quiet(validator *eslint.Validator, env *core.Environment, config *core.Config) {
	issues, err := validator.Validate(env.Context(os.Stdin))
	if err != nil {
		log.Fatalf("%s", err)
	}
	// Unsaved buffers have no file to mark.
	if env.FilePath != "" {
		if env.Mate == "" {
			log.Fatalf("TM_MATE is not set, cannot update gutter marks")
		}
		if err := gutter.New(env.Mate).Update(env.FilePath, issues); err != nil {
			log.Warning("Failed to update gutter marks: %s", err)
		}
	}
	fmt.Println(report.Tooltip(issues, config.Report.Hint))
}

// fix runs ESLint's autofix against the current file, then clears any gutter
// marks that the fixes have made stale.
func fix(validator *eslint.Validator, env *core.Environment) {
	ctx := env.Context(os.Stdin)
	if err := validator.Fix(ctx); err != nil {
		log.Fatalf("%s", err)
	}
	if ctx.Filename != "" && !ctx.InputIsHTML && env.Mate != "" {
		if err := gutter.New(env.Mate).Clear(ctx.Filename); err != nil {
			log.Warning("Failed to clear gutter marks: %s", err)
		}
	}
}
