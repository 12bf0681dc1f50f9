package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"time"

	"github.com/tmbundle/eslint-mate/src/core"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.New("report").ParseFS(templateFiles, "templates/*.html"))

// A Context carries everything the report templates can refer to. The field
// set matches the original bundle's templates so those remain drop-in
// replaceable.
// The URL-typed fields carry editor-specific schemes (txmt://, tm-file://)
// that the template engine would otherwise sanitise away.
type Context struct {
	// BasePath resolves the report's static assets inside the bundle.
	BasePath template.URL
	// Timestamp is the human-readable time the report was generated at.
	Timestamp string
	// TargetFilename names the file the report concerns, or a placeholder
	// when the buffer has never been saved.
	TargetFilename string
	// TargetURL deep-links back to the file in the editor.
	TargetURL           template.URL
	Issues              []core.Issue
	ErrorCountString    string
	WarningCountString  string
	HasErrorsOrWarnings bool
	// ErrorMessage and SearchPath are only set on the failure pages.
	ErrorMessage string
	SearchPath   string

	filePath string
}

// IssueURL deep-links to the given issue's position in the editor.
func (c *Context) IssueURL(issue core.Issue) template.URL {
	if c.filePath == "" {
		return template.URL(fmt.Sprintf("txmt://open?line=%d&column=%d", issue.Line, issue.Character))
	}
	return template.URL(fmt.Sprintf("txmt://open?url=file://%s&line=%d&column=%d", c.filePath, issue.Line, issue.Character))
}

// NewContext returns a report context for the given environment.
func NewContext(env *core.Environment) *Context {
	c := &Context{
		BasePath:       template.URL("tm-file://" + env.BundleSupport),
		Timestamp:      time.Now().Format(time.ANSIC),
		TargetFilename: core.UnsavedFilename,
		TargetURL:      "txmt://open?line=1&column=0",
		filePath:       env.FilePath,
	}
	if env.FilePath != "" {
		c.TargetFilename = filepath.Base(env.FilePath)
		c.TargetURL = template.URL("txmt://open?url=file://" + env.FilePath)
	}
	return c
}

// HTML renders the full report page for the given issues to w.
func HTML(w io.Writer, env *core.Environment, issues []core.Issue) error {
	c := NewContext(env)
	c.Issues = issues
	errors, warnings := Count(issues)
	c.HasErrorsOrWarnings = errors+warnings > 0
	if errors > 0 {
		c.ErrorCountString = countString(errors, "error")
	}
	if warnings > 0 {
		c.WarningCountString = countString(warnings, "warning")
	}
	return templates.ExecuteTemplate(w, "report.html", c)
}

// HTMLFailure renders the error page for a run where ESLint could not produce
// results at all. Which page depends on whether we know the path the failure
// concerns.
func HTMLFailure(w io.Writer, env *core.Environment, failure *core.ValidationFailure) error {
	c := NewContext(env)
	c.ErrorMessage = failure.Message
	if failure.SearchPath != "" {
		c.SearchPath = failure.SearchPath
		return templates.ExecuteTemplate(w, "error_path.html", c)
	}
	return templates.ExecuteTemplate(w, "error_other.html", c)
}
