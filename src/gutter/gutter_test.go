package gutter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmbundle/eslint-mate/src/core"
)

// recorder replaces the Updater's mate invocation and captures each argv.
func recorder(u *Updater) *[][]string {
	calls := &[][]string{}
	u.run = func(argv []string) error {
		*calls = append(*calls, argv)
		return nil
	}
	return calls
}

func TestUpdateClearsBeforeSetting(t *testing.T) {
	u := New("/usr/local/bin/mate")
	calls := recorder(u)
	issues := []core.Issue{
		{Line: 3, Character: 5, Reason: "Missing semicolon", Shortname: "semi", IsError: true},
		{Line: 7, Character: 1, Reason: "Unexpected console statement", IsWarning: true},
	}
	assert.NoError(t, u.Update("/tmp/app.js", issues))
	assert.Equal(t, [][]string{
		{"--clear-mark=warning", "/tmp/app.js"},
		{"--set-mark=warning:[ESLint] Missing semicolon (semi)", "--line=3:5", "/tmp/app.js"},
		{"--set-mark=warning:[ESLint] Unexpected console statement", "--line=7:1", "/tmp/app.js"},
	}, *calls)
}

func TestUpdateWithNoIssuesStillClears(t *testing.T) {
	u := New("/usr/local/bin/mate")
	calls := recorder(u)
	assert.NoError(t, u.Update("/tmp/app.js", nil))
	assert.Equal(t, [][]string{
		{"--clear-mark=warning", "/tmp/app.js"},
	}, *calls)
}

func TestUpdateSetsMarksInIssueOrder(t *testing.T) {
	u := New("/usr/local/bin/mate")
	calls := recorder(u)
	issues := []core.Issue{
		{Line: 9, Character: 1, Reason: "c"},
		{Line: 2, Character: 1, Reason: "a"},
		{Line: 5, Character: 1, Reason: "b"},
	}
	assert.NoError(t, u.Update("/tmp/app.js", issues))
	assert.Equal(t, 4, len(*calls))
	assert.Equal(t, "--line=9:1", (*calls)[1][1])
	assert.Equal(t, "--line=2:1", (*calls)[2][1])
	assert.Equal(t, "--line=5:1", (*calls)[3][1])
}

func TestUpdateKeepsGoingOnFailure(t *testing.T) {
	u := New("/usr/local/bin/mate")
	count := 0
	u.run = func(argv []string) error {
		count++
		return fmt.Errorf("mate call %d failed", count)
	}
	issues := []core.Issue{
		{Line: 1, Character: 1, Reason: "a"},
		{Line: 2, Character: 1, Reason: "b"},
	}
	err := u.Update("/tmp/app.js", issues)
	assert.Error(t, err)
	assert.Equal(t, 3, count) // The failures didn't stop any of the calls being made.
}

func TestClear(t *testing.T) {
	u := New("/usr/local/bin/mate")
	calls := recorder(u)
	assert.NoError(t, u.Clear("/tmp/app.js"))
	assert.Equal(t, [][]string{{"--clear-mark=warning", "/tmp/app.js"}}, *calls)
}
