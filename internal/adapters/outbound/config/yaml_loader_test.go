package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/abdidvp/dartlint/internal/adapters/outbound/config"
	"github.com/abdidvp/dartlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, appconfig.FileName), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
source_dir: app/lib
exclude_paths:
  - generated
disabled_rules:
  - unused_field
  - unused_element
skip_checks:
  - unused_variable
workers: 4
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "app/lib", cfg.SourceDir)
	assert.Equal(t, ".dart", cfg.Extension, "unset fields fall back to defaults")
	assert.Equal(t, []string{"generated"}, cfg.ExcludePaths)
	assert.True(t, cfg.IsRuleDisabled("unused_element"))
	assert.True(t, cfg.IsCheckSkipped(domain.CategoryUnusedVariable))
	assert.Equal(t, 4, cfg.Workers)
}

func TestYAMLLoader_IgnoresToolSettings(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
log:
  level: debug
source_dir: lib
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "lib", cfg.SourceDir)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)

	_, err := appconfig.New().Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .dartlint.yaml")
}

func TestYAMLLoader_UnknownRule(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
disabled_rules:
  - unused_feild
`)

	_, err := appconfig.New().Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .dartlint.yaml")
	assert.Contains(t, err.Error(), "unused_feild")
}
