package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command against an isolated home directory.
func runCLI(t *testing.T, root, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--plain", "--diary-path", root, "--timezone", "UTC"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"DAILY_DIARY_ROOT", "DAILY_DIARY_FORMAT", "DAILY_DIARY_TIMEZONE", "DAILY_LOGGING_LEVEL", "DAILY_LOGGING_FILE"} {
		t.Setenv(key, "")
	}
	return filepath.Join(t.TempDir(), "diary")
}

func TestAddAndSearch(t *testing.T) {
	root := isolate(t)

	out, err := runCLI(t, root, "", "add", "Dinner", "with", "Sam", "--at", "2024-01-15 19:30:00", "-t", "food")
	require.NoError(t, err)
	assert.Equal(t, "Diary entry added for 2024-01-15 19:30:00 [tags: food]\n", out)

	_, err = runCLI(t, root, "Morning run\n", "add", "--at", "2024-01-16 07:00:00", "--tag", "sport")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(root, "2024", "01", "2024-01-15.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "## 19:30\n\nDinner with Sam\n\n#food")

	out, err = runCLI(t, root, "", "search", "--start", "2024-01-01", "--end", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "Diary Entries:\n\nDate: 2024-01-16\n  [07:00] [sport] Morning run\n\nDate: 2024-01-15\n  [19:30] [food] Dinner with Sam\n", out)

	out, err = runCLI(t, root, "", "search", "-t", "#FOOD", "--start", "2024-01-01", "--end", "2024-01-31")
	require.NoError(t, err)
	assert.NotContains(t, out, "Morning run")
	assert.Contains(t, out, "Dinner with Sam")
}

func TestAddReportsFailuresInOutput(t *testing.T) {
	root := isolate(t)

	out, err := runCLI(t, root, "", "add", "hello", "--at", "yesterday")
	require.NoError(t, err)
	assert.Equal(t, "Invalid datetime format: yesterday. Use YYYY-MM-DD HH:MM:SS\n", out)

	out, err = runCLI(t, root, "", "search", "--start", "2024-02-01", "--end", "2024-01-01")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Invalid range"), out)
}

func TestSummary(t *testing.T) {
	root := isolate(t)

	out, err := runCLI(t, root, "", "summary", "--date", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "📝 Diary: No entries\n", out)

	_, err = runCLI(t, root, "", "add", "Long day", "--at", "2024-01-15 18:00:00")
	require.NoError(t, err)

	out, err = runCLI(t, root, "", "summary", "--date", "2024-01-15")
	require.NoError(t, err)
	assert.Contains(t, out, "📝 Diary: 1 entries")
	assert.Contains(t, out, "18:00")

	_, err = runCLI(t, root, "", "summary", "--date", "15/01/2024")
	assert.Error(t, err)
}

func TestToolCommand(t *testing.T) {
	root := isolate(t)

	out, err := runCLI(t, root, `<arguments><content>Via tool</content><datetime>2024-01-15 10:00:00</datetime></arguments>`, "tool", "add_diary")
	require.NoError(t, err)
	assert.Equal(t, "Diary entry added for 2024-01-15 10:00:00\n", out)

	call := `<tool>
<server_name>local</server_name>
<tool_name>search_diary</tool_name>
<arguments><keyword>via</keyword><start_datetime>2024-01-01</start_datetime><end_datetime>2024-01-31</end_datetime></arguments>
</tool>`
	out, err = runCLI(t, root, call, "tool", "--call")
	require.NoError(t, err)
	assert.Contains(t, out, "[10:00] Via tool")

	out, err = runCLI(t, root, "", "tool", "no_such_tool")
	require.NoError(t, err)
	assert.Equal(t, "Unknown tool: no_such_tool\n", out)

	out, err = runCLI(t, root, "", "tool", "--list")
	require.NoError(t, err)
	for _, name := range []string{"add_diary", "diary_summary", "get_current_time", "search_diary"} {
		assert.Contains(t, out, name)
	}

	_, err = runCLI(t, root, "", "tool")
	assert.Error(t, err)
}

func TestTimeCommand(t *testing.T) {
	out, err := runCLI(t, isolate(t), "", "time")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Current Time Information:"), out)
}

func TestMigrateCommand(t *testing.T) {
	root := isolate(t)
	legacy := t.TempDir()
	records := `[{"content": "Old entry", "datetime": "2024-01-10 08:00:00", "created_at": "2024-01-10T08:00:05.123456", "tags": ["work"]}]`
	require.NoError(t, os.WriteFile(filepath.Join(legacy, "2024-01-10.json"), []byte(records), 0o600))

	out, err := runCLI(t, root, "", "migrate", "--from", legacy)
	require.NoError(t, err)
	assert.Equal(t, "Migrated 1 entries from 1 days\n", out)

	raw, err := os.ReadFile(filepath.Join(root, "2024", "01", "2024-01-10.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "## 08:00\n\nOld entry\n\n#work")

	out, err = runCLI(t, root, "", "migrate", "--from", legacy)
	require.NoError(t, err)
	assert.Contains(t, out, "skipped 1 days")

	_, err = runCLI(t, root, "", "migrate")
	assert.Error(t, err, "--from is required")
}

func TestConfigCommands(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := runCLI(t, root, "", "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = runCLI(t, root, "", "--config", path, "config", "init")
	assert.Error(t, err, "init refuses to overwrite")

	out, err = runCLI(t, root, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "root: "+root)
	assert.Contains(t, out, "timezone: UTC")

	out, err = runCLI(t, root, "", "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestFlagsOverrideInvalidConfigValues(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diary:\n  timezone: Mars/Olympus\n"), 0o600))

	// runCLI passes --timezone UTC, which replaces the bad zone before validation.
	out, err := runCLI(t, root, "", "--config", path, "add", "still works", "--at", "2024-01-15 09:00:00")
	require.NoError(t, err)
	assert.Equal(t, "Diary entry added for 2024-01-15 09:00:00\n", out)
}

func TestStylizeKeepsPlainText(t *testing.T) {
	text := "Diary Entries:\n\nDate: 2024-01-15\n  [19:30] Dinner"
	assert.Equal(t, text, stylize(text, true))
	assert.Contains(t, stylize(text, false), "Dinner")
}
