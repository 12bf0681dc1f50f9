package eslint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmbundle/eslint-mate/src/core"
)

const eslintOutput = `[
  {
    "filePath": "/home/user/project/app.js",
    "messages": [
      {"ruleId": "semi", "severity": 2, "message": "Missing semicolon.", "line": 3, "column": 5},
      {"ruleId": "no-console", "severity": 1, "message": "Unexpected console statement.", "line": 7, "column": 1},
      {"ruleId": null, "severity": 2, "message": "Parsing error: Unexpected token }", "line": 12, "column": 2}
    ],
    "errorCount": 2,
    "warningCount": 1
  }
]`

func TestParseResults(t *testing.T) {
	issues, err := parseResults([]byte(eslintOutput), 0)
	require.NoError(t, err)
	assert.Equal(t, []core.Issue{
		{Line: 3, Character: 5, Reason: "Missing semicolon.", Shortname: "semi", IsError: true},
		{Line: 7, Character: 1, Reason: "Unexpected console statement.", Shortname: "no-console", IsWarning: true},
		{Line: 12, Character: 2, Reason: "Parsing error: Unexpected token }", IsError: true},
	}, issues)
}

func TestParseResultsAppliesLineOffset(t *testing.T) {
	issues, err := parseResults([]byte(eslintOutput), 10)
	require.NoError(t, err)
	assert.Equal(t, 13, issues[0].Line)
	assert.Equal(t, 17, issues[1].Line)
	// Columns are unaffected by the offset.
	assert.Equal(t, 5, issues[0].Character)
}

func TestParseResultsUnknownSeverity(t *testing.T) {
	const out = `[{"filePath": "a.js", "messages": [
      {"ruleId": "whatever", "severity": 3, "message": "From the future", "line": 1, "column": 1}
    ]}]`
	issues, err := parseResults([]byte(out), 0)
	require.NoError(t, err)
	require.Equal(t, 1, len(issues))
	// Severities we don't know about are reported but counted in neither bucket.
	assert.False(t, issues[0].IsError)
	assert.False(t, issues[0].IsWarning)
}

func TestParseResultsEmpty(t *testing.T) {
	issues, err := parseResults([]byte(`[{"filePath": "a.js", "messages": []}]`), 0)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestParseResultsMultipleFiles(t *testing.T) {
	const out = `[
      {"filePath": "a.js", "messages": [{"ruleId": "semi", "severity": 2, "message": "a", "line": 1, "column": 1}]},
      {"filePath": "b.js", "messages": [{"ruleId": "semi", "severity": 2, "message": "b", "line": 2, "column": 1}]}
    ]`
	issues, err := parseResults([]byte(out), 0)
	require.NoError(t, err)
	require.Equal(t, 2, len(issues))
	assert.Equal(t, "a", issues[0].Reason)
	assert.Equal(t, "b", issues[1].Reason)
}

func TestParseResultsNotJSON(t *testing.T) {
	_, err := parseResults([]byte("Oops, something went wrong"), 0)
	assert.Error(t, err)
}

func TestNewFailureConfigNotFound(t *testing.T) {
	failure := newFailure("\nOops! Something went wrong! :(\n\nNo ESLint configuration found in /home/user/project.\n")
	assert.Equal(t, "/home/user/project", failure.SearchPath)
}

func TestNewFailureUnreadableConfig(t *testing.T) {
	failure := newFailure("Cannot read config file: /home/user/project/.eslintrc.json\nError: Unexpected token }")
	assert.Equal(t, "/home/user/project/.eslintrc.json", failure.SearchPath)
}

func TestNewFailureBrokenExtends(t *testing.T) {
	failure := newFailure("ESLint couldn't find the config \"standard\" to extend from.\nReferenced from: /home/user/project/.eslintrc.yml")
	assert.Equal(t, "/home/user/project/.eslintrc.yml", failure.SearchPath)
}

func TestNewFailureNoPath(t *testing.T) {
	failure := newFailure("  something inscrutable happened\n")
	assert.Equal(t, "something inscrutable happened", failure.Message)
	assert.Equal(t, "", failure.SearchPath)
}
