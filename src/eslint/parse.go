package eslint

import (
	"encoding/json"
	"strings"

	"github.com/peterebden/go-deferred-regex"

	"github.com/tmbundle/eslint-mate/src/core"
)

// Severity levels in ESLint's JSON output format.
const (
	severityWarning = 1
	severityError   = 2
)

// A resultFile mirrors one entry of ESLint's --format json output, which is an
// array of per-file results each carrying a list of messages.
type resultFile struct {
	FilePath string    `json:"filePath"`
	Messages []message `json:"messages"`
}

type message struct {
	RuleID   string `json:"ruleId"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// parseResults parses ESLint's JSON output into issues in reported order,
// adding lineOffset to each reported line number.
// Severities other than the two we know about end up in neither bucket.
func parseResults(out []byte, lineOffset int) ([]core.Issue, error) {
	var files []resultFile
	if err := json.Unmarshal(out, &files); err != nil {
		return nil, err
	}
	issues := []core.Issue{}
	for _, file := range files {
		for _, msg := range file.Messages {
			issues = append(issues, core.Issue{
				Line:      msg.Line + lineOffset,
				Character: msg.Column,
				Reason:    msg.Message,
				Shortname: msg.RuleID,
				IsError:   msg.Severity == severityError,
				IsWarning: msg.Severity == severityWarning,
			})
		}
	}
	return issues, nil
}

// Patterns ESLint uses to describe configuration resolution problems. The
// first capture group of each is the filesystem path it was looking at.
var configErrorRes = []deferredregex.DeferredRegex{
	{Re: `(?m)^No ESLint configuration found in (.+?)\.?$`},
	{Re: `(?m)^Cannot read config file: (.+)$`},
	{Re: `(?m)^Referenced from: (.+)$`},
}

// newFailure classifies ESLint's diagnostic output into a ValidationFailure,
// extracting the configuration search path when one is identifiable.
func newFailure(out string) *core.ValidationFailure {
	msg := strings.TrimSpace(out)
	for i := range configErrorRes {
		if matches := configErrorRes[i].FindStringSubmatch(msg); matches != nil {
			return &core.ValidationFailure{Message: msg, SearchPath: strings.TrimSpace(matches[1])}
		}
	}
	return &core.ValidationFailure{Message: msg}
}
