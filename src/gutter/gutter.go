// Package gutter updates TextMate's per-line gutter marks via the mate helper.
package gutter

import (
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/op/go-logging.v1"

	"github.com/tmbundle/eslint-mate/src/core"
)

var log = logging.MustGetLogger("gutter")

// Category is the mark category used for ESLint findings.
const Category = "warning"

// An Updater drives the mate helper to set and clear gutter marks.
type Updater struct {
	// Mate is the path to the mate binary, from TM_MATE.
	Mate string
	run  func(argv []string) error
}

// New returns an Updater for the given mate binary.
func New(mate string) *Updater {
	u := &Updater{Mate: mate}
	u.run = u.runMate
	return u
}

func (u *Updater) runMate(argv []string) error {
	log.Debug("Running %s %s", u.Mate, argv)
	return exec.Command(u.Mate, argv...).Run()
}

// Clear removes all marks in our category from the given file.
func (u *Updater) Clear(file string) error {
	return u.run([]string{"--clear-mark=" + Category, file})
}

// Update replaces all marks on the given file with one mark per issue, in
// issue order. The clear happens even when there are no issues at all, since
// a previous run may have left stale marks behind.
// Individual mark failures don't stop the remaining marks being set; they're
// aggregated into the returned error.
func (u *Updater) Update(file string, issues []core.Issue) error {
	var errs *multierror.Error
	if err := u.Clear(file); err != nil {
		errs = multierror.Append(errs, err)
	}
	for _, issue := range issues {
		argv := []string{
			fmt.Sprintf("--set-mark=%s:[ESLint] %s", Category, issue.Label()),
			"--line=" + issue.Position(),
			file,
		}
		if err := u.run(argv); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}
