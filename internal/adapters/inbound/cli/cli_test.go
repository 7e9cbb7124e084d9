package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/dartlint/internal/adapters/inbound/cli"
	"github.com/abdidvp/dartlint/internal/domain"
)

const fixtureDir = "../../../../testdata/flutter-app"

// copyFixture returns a scratch copy of the fixture app; fix and scan both
// write state into the project directory.
func copyFixture(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "app")
	require.NoError(t, os.CopyFS(dir, os.DirFS(fixtureDir)))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "dartlint.log")))
	err := cmd.Execute()
	return buf.String(), err
}

func TestScanCommand_Console(t *testing.T) {
	dir := copyFixture(t)

	out, err := run(t, "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "📁 lib/main.dart")
	assert.Contains(t, out, "⚠️  dart:io imported but not used")
	assert.Contains(t, out, "📁 lib/services/api_client.dart")
	assert.Contains(t, out, "dart:typed_data imported but not used")
	assert.Contains(t, out, "Variable 'prefix' declared but not used")
	assert.Contains(t, out, "SUMMARY: 3 issues found")
	assert.Contains(t, out, "❌ Found issues that may produce analyzer warnings")
	assert.NotContains(t, out, "widget_test.dart", "only lib/ is scanned")
}

func TestScanCommand_JSON(t *testing.T) {
	dir := copyFixture(t)

	out, err := run(t, "scan", dir, "--json", "--no-cache")
	require.NoError(t, err)

	var report domain.ScanReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.Files)
	assert.Equal(t, 3, report.TotalIssues)
	require.Len(t, report.Reports, 2)
	assert.Equal(t, "lib/main.dart", report.Reports[0].File)
	assert.Equal(t, "lib/services/api_client.dart", report.Reports[1].File)
}

func TestScanCommand_Workers(t *testing.T) {
	dir := copyFixture(t)

	out, err := run(t, "scan", dir, "--json", "--workers", "4")
	require.NoError(t, err)

	var report domain.ScanReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "lib/main.dart", report.Reports[0].File)
}

func TestScanCommand_ChangedNeedsGit(t *testing.T) {
	_, err := run(t, "scan", copyFixture(t), "--changed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git repository")
	assert.Contains(t, err.Error(), "is not inside one")
}

func TestScanCommand_NoCacheDropsCache(t *testing.T) {
	dir := copyFixture(t)
	cacheFile := filepath.Join(dir, ".dartlint", "cache", "scan.msgpack")

	_, err := run(t, "scan", dir)
	require.NoError(t, err)
	assert.FileExists(t, cacheFile)

	out, err := run(t, "scan", dir, "--no-cache")
	require.NoError(t, err)
	assert.Contains(t, out, "SUMMARY: 3 issues found")
	assert.NoFileExists(t, cacheFile)
}

func TestScanCommand_InvalidConfig(t *testing.T) {
	dir := copyFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dartlint.yaml"), []byte("workers: -1\n"), 0644))

	_, err := run(t, "scan", dir)
	assert.Error(t, err)
}

func TestFixCommand_Console(t *testing.T) {
	dir := copyFixture(t)

	out, err := run(t, "fix", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Fixed: lib/main.dart")
	assert.Contains(t, out, "✓ Fixed: lib/screens/settings_page.dart")
	assert.Contains(t, out, "✓ Fixed: lib/services/api_client.dart")
	assert.NotContains(t, out, "math_utils.dart")
	assert.Contains(t, out, "=== SUMMARY ===")
	assert.Contains(t, out, "Total files fixed: 3")

	data, err := os.ReadFile(filepath.Join(dir, "lib", "screens", "settings_page.dart"))
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "// ignore_for_file: library_private_types_in_public_api\n")
	assert.Contains(t, page, "const SettingsPage({super.key})")
	assert.Contains(t, page, "final bool _notifications = true;")
	assert.Contains(t, page, "_label ??= 'Settings';")
	assert.Contains(t, page, "    await Future.delayed(const Duration(seconds: 1));\n    if (!context.mounted) return;\n    Navigator.of(context).pop();")
	assert.Contains(t, page, "'Hello $_label'")

	data, err = os.ReadFile(filepath.Join(dir, "lib", "services", "api_client.dart"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dart:typed_data")
	assert.Contains(t, string(data), "final data = jsonDecode(body);")
	assert.Contains(t, string(data), "name ?? 'anonymous'")
}

func TestFixCommand_Idempotent(t *testing.T) {
	dir := copyFixture(t)

	_, err := run(t, "fix", dir)
	require.NoError(t, err)

	out, err := run(t, "fix", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Total files fixed: 0")
}

func TestFixCommand_DryRunJSON(t *testing.T) {
	dir := copyFixture(t)
	before, err := os.ReadFile(filepath.Join(dir, "lib", "main.dart"))
	require.NoError(t, err)

	out, err := run(t, "fix", dir, "--dry-run", "--diff", "--json")
	require.NoError(t, err)

	var result domain.FixResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.DryRun)
	assert.Equal(t, []string{
		"lib/main.dart",
		"lib/screens/settings_page.dart",
		"lib/services/api_client.dart",
	}, result.Modified)
	assert.Equal(t, []string{"use_super_parameters"}, result.Changes[0].Rules)
	assert.Contains(t, result.Changes[0].Diff, "+  const MyApp({super.key}) : super(key: key);")

	after, err := os.ReadFile(filepath.Join(dir, "lib", "main.dart"))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestFixCommand_DisabledRules(t *testing.T) {
	dir := copyFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dartlint.yaml"),
		[]byte("disabled_rules:\n  - use_super_parameters\n"), 0644))

	out, err := run(t, "fix", dir, "--json")
	require.NoError(t, err)

	var result domain.FixResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.NotContains(t, result.Modified, "lib/main.dart")
	assert.Len(t, result.Modified, 2)
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "rules", copyFixture(t))
	require.NoError(t, err)
	for _, name := range domain.ValidRules {
		assert.Contains(t, out, name)
	}
}

func TestRulesCommand_JSON(t *testing.T) {
	out, err := run(t, "rules", copyFixture(t), "--json")
	require.NoError(t, err)

	var rows []struct {
		Order   int    `json:"order"`
		Name    string `json:"name"`
		Enabled bool   `json:"enabled"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 20)
	assert.Equal(t, "avoid_web_libraries_in_flutter", rows[19].Name)
	assert.Equal(t, 20, rows[19].Order)
	assert.True(t, rows[19].Enabled)
}

func TestHistoryCommand(t *testing.T) {
	dir := copyFixture(t)

	out, err := run(t, "history", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No run history found.")

	_, err = run(t, "scan", dir)
	require.NoError(t, err)
	_, err = run(t, "fix", dir)
	require.NoError(t, err)

	out, err = run(t, "history", dir, "--json")
	require.NoError(t, err)
	var entries []domain.RunEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "scan", entries[0].Command)
	assert.Equal(t, 3, entries[0].Issues)
	assert.Equal(t, "fix", entries[1].Command)
	assert.Equal(t, 3, entries[1].Modified)

	out, err = run(t, "history", dir, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "fixed 3/4 files")
	assert.NotContains(t, out, "3 issues")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dartlint dev")
}

func TestMCPCommandExists(t *testing.T) {
	_, err := run(t, "mcp", "--help")
	assert.NoError(t, err)
}

func TestMCPServeCommandExists(t *testing.T) {
	_, err := run(t, "mcp", "serve", "--help")
	assert.NoError(t, err)
}
