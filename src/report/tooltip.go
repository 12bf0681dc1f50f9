// Package report formats validation results for the editor, either as a short
// tooltip summary or as a full HTML report page.
package report

import (
	"fmt"
	"strings"

	"github.com/tmbundle/eslint-mate/src/core"
)

// Tooltip summarises the given issues as a short string suitable for a
// tooltip, e.g. "2 errors, 1 warning". It returns the empty string when there
// are no errors or warnings at all; otherwise the given hint about opening
// the full report is appended on its own line.
func Tooltip(issues []core.Issue, hint string) string {
	errors, warnings := Count(issues)
	parts := []string{}
	if errors > 0 {
		parts = append(parts, countString(errors, "error"))
	}
	if warnings > 0 {
		parts = append(parts, countString(warnings, "warning"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ") + "\r\r" + hint
}

// Count returns the number of errors and warnings among the given issues.
// Issues of neither severity are counted in neither bucket.
func Count(issues []core.Issue) (errors, warnings int) {
	for _, issue := range issues {
		if issue.IsError {
			errors++
		}
		if issue.IsWarning {
			warnings++
		}
	}
	return errors, warnings
}

// countString pluralises a count of problems, e.g. "1 error" or "3 warnings".
func countString(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
