package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clickOnceScenario = `name: click_once
app: counter
steps:
  - click: button
assertions:
  - type: text_equals
    selector: p.count
    value: "Count: 1"
`

const failingScenario = `name: wrong_count
app: counter
steps:
  - click: button
assertions:
  - type: text_equals
    selector: p.count
    value: "Count: 5"
`

func TestTestCommand_GoldenLifecycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "click_once.yaml", clickOnceScenario)

	out, _, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ click_once\n")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")

	out, _, err = execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ click_once (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "click_once.golden"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(golden), "== 0 mount\n"))
	assert.Contains(t, string(golden), "== 1 click button\n")

	out, _, err = execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ click_once (golden)")

	writeFile(t, dir, "golden/click_once.golden", "== 0 mount\n<p>stale</p>\n")
	out, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, out, "✗ click_once")
	assert.Contains(t, out, "snapshots do not match golden file")
}

func TestTestCommand_FailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.yaml", clickOnceScenario)
	writeFile(t, dir, "bad.yaml", failingScenario)

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, out, "✗ wrong_count")
	assert.Contains(t, out, `Expected: "Count: 5"`)
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.yaml", clickOnceScenario)
	writeFile(t, dir, "bad.yaml", failingScenario)

	out, _, err := execute(t, "test", dir, "--filter", "ok*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommand_InvalidScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "name: broken\napp: counter\nsteps:\n  - click: button\n    submit: form\n")

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.yaml", clickOnceScenario)
	writeFile(t, dir, "bad.yaml", failingScenario)

	out, _, err := execute(t, "--format", "json", "test", dir)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Failed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
}

func TestTestCommand_NoScenarios(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_MissingDir(t *testing.T) {
	_, _, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
}

func TestTestCommand_HarnessScenarios(t *testing.T) {
	out, _, err := execute(t, "test", "../harness/testdata/scenarios", "--golden", "../harness/testdata/golden")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ counter_increments (golden)")
	assert.Contains(t, out, "✓ reducer_actions (golden)")
	assert.Contains(t, out, "✓ theme_provider_scope (golden)")
	assert.Contains(t, out, "✓ All scenarios passed")
}
