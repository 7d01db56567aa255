package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/gifnar/volunteerlog/internal/export"
	"github.com/gifnar/volunteerlog/internal/logbook"
)

type testEnv struct {
	db        string
	exportDir string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	return testEnv{
		db:        filepath.Join(dir, "test.db"),
		exportDir: filepath.Join(dir, "exports"),
	}
}

// run executes one command line against the env's database and returns
// stdout and stderr.
func (e testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--db", e.db, "--export-dir", e.exportDir}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "", "add", "--date", "2025-12-27", "--org", "Houston Food Bank",
		"--hours", "2.5", "--tasks", "Sorting", "--tags", "food, service")
	require.NoError(t, err)
	require.Contains(t, out, "Added 2025-12-27, Houston Food Bank (2.5h)")

	_, _, err = env.run(t, "", "add", "--date", "2025-12-28", "--org", "Library", "--hours", "1")
	require.NoError(t, err)

	out, _, err = env.run(t, "", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Saved Entries (2), 3.5h total")
	require.Less(t, strings.Index(out, "Library"), strings.Index(out, "Houston Food Bank"))
	require.Contains(t, out, "  Tasks: Sorting")
	require.Contains(t, out, "  Tags: food, service")
	require.NotContains(t, out, "Reflection:")
}

func TestAddDefaults(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "", "add", "--org", "Shelter")
	require.NoError(t, err)
	require.Contains(t, out, "Shelter (1h)")
}

func TestAddRejected(t *testing.T) {
	env := newTestEnv(t)

	_, errOut, err := env.run(t, "", "add", "--date", "2025-12-27", "--org", "   ")
	require.ErrorIs(t, err, errEntryRejected)
	require.Contains(t, errOut, "Please enter at least Date and Organization.")

	_, errOut, err = env.run(t, "", "add", "--org", "Shelter", "--hours", "0")
	require.ErrorIs(t, err, errEntryRejected)
	require.Contains(t, errOut, "Hours must be greater than 0.")

	out, _, err := env.run(t, "", "list")
	require.NoError(t, err)
	require.Contains(t, out, "No entries yet.")
}

func TestExportJSONToStdout(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "add", "--date", "2025-12-27", "--org", "Food Bank", "--hours", "2")
	require.NoError(t, err)

	out, _, err := env.run(t, "", "export", "--format", "json")
	require.NoError(t, err)

	got, err := export.FromJSON([]byte(out))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Food Bank", got[0].Org)
	require.Equal(t, 2.0, got[0].Hours)
}

func TestExportCSVToStdout(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "add", "--date", "2025-12-27", "--org", `Food "Bank"`, "--hours", "2")
	require.NoError(t, err)

	out, _, err := env.run(t, "", "export")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, export.CSVHeader, lines[0])
	require.True(t, strings.HasPrefix(lines[1], `"2025-12-27","Food ""Bank""",2,`), lines[1])
}

func TestExportSave(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "", "export", "--format", "csv", "--save")
	require.NoError(t, err)
	require.Contains(t, out, filepath.Join(env.exportDir, export.CSVFilename))
	require.FileExists(t, filepath.Join(env.exportDir, export.CSVFilename))
}

func TestExportUnknownFormat(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "", "export", "--format", "xml")
	require.ErrorContains(t, err, "unknown format")
}

func TestClearDeclined(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "add", "--org", "Shelter")
	require.NoError(t, err)

	out, errOut, err := env.run(t, "n\n", "clear")
	require.NoError(t, err)
	require.Contains(t, errOut, "Clear ALL saved entries on this device? [y/N]")
	require.Contains(t, out, "Nothing cleared.")

	out, _, err = env.run(t, "", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Saved Entries (1)")
}

func TestClearConfirmed(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "add", "--org", "Shelter")
	require.NoError(t, err)

	out, _, err := env.run(t, "yes\n", "clear")
	require.NoError(t, err)
	require.Contains(t, out, "Cleared 1 entries.")

	out, _, err = env.run(t, "", "list")
	require.NoError(t, err)
	require.Contains(t, out, "No entries yet.")
}

func TestClearYesFlag(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", "add", "--org", "Shelter")
	require.NoError(t, err)

	out, errOut, err := env.run(t, "", "clear", "--yes")
	require.NoError(t, err)
	require.Empty(t, errOut)
	require.Contains(t, out, "Cleared 1 entries.")
}

func TestReport(t *testing.T) {
	env := newTestEnv(t)
	for _, args := range [][]string{
		{"add", "--org", "Library", "--hours", "1"},
		{"add", "--org", "Food Bank", "--hours", "2"},
		{"add", "--org", "Food Bank", "--hours", "1.5"},
	} {
		_, _, err := env.run(t, "", args...)
		require.NoError(t, err)
	}

	out, _, err := env.run(t, "", "report")
	require.NoError(t, err)
	require.Less(t, strings.Index(out, "Food Bank"), strings.Index(out, "Library"))
	require.Contains(t, out, "3.5")
	require.Contains(t, out, "4.5")
}

func TestMissingExplicitConfig(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "list")
	require.ErrorContains(t, err, "read config")
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		yes   bool
		want  bool
	}{
		{"y\n", false, true},
		{"Yes\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"y", false, true},
		{"", true, true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		c := promptConfirmer{in: strings.NewReader(tt.input), out: &out, yes: tt.yes}
		if got := c.Confirm("Sure?"); got != tt.want {
			t.Errorf("Confirm(%q, yes=%v) = %v, want %v", tt.input, tt.yes, got, tt.want)
		}
	}
}

func TestPrintReportEmpty(t *testing.T) {
	var out bytes.Buffer
	printReport(&out, []logbook.OrgHours{}, 0)
	require.Equal(t, "No data yet.\n", out.String())
}

func TestWriterDownloaderAddsNewline(t *testing.T) {
	var out bytes.Buffer
	d := writerDownloader{w: &out}
	require.NoError(t, d.Download("x.json", "[]"))
	require.Equal(t, "[]\n", out.String())

	out.Reset()
	require.NoError(t, d.Download("x.csv", "a\n"))
	require.Equal(t, "a\n", out.String())
}

func TestBindFlagsMissingFlag(t *testing.T) {
	err := bindFlags(viper.New(), &cobra.Command{Use: "bare"})
	require.ErrorContains(t, err, "bind --db")
}

func TestFlagsOverrideConfig(t *testing.T) {
	env := newTestEnv(t)
	logFile := filepath.Join(t.TempDir(), "v.log")

	_, _, err := env.run(t, "", "--log-file", logFile, "--log-level", "debug", "list")
	require.NoError(t, err)
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "session opened")

	_, _, err = env.run(t, "", "--log-level", "loud", "list")
	require.ErrorContains(t, err, "unknown log level")
}
