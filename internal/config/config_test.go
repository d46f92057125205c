package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aegentdev/aivss/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`
format: sarif
fail_on: high
workers: 4
no_color: true
threat_multipliers:
  unreported: 0.90
  proof_of_concept: 0.95
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aivss.yml"), data, 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, "sarif", cfg.Format)
	require.Equal(t, "high", cfg.FailOn)
	require.Equal(t, 4, cfg.Workers)
	require.True(t, cfg.NoColor)
	require.Len(t, cfg.ThreatMultipliers, 2)
	require.Equal(t, 0.90, cfg.ThreatMultipliers["unreported"])
}

func TestLoadConfigYAMLExtension(t *testing.T) {
	dir := t.TempDir()
	data := []byte("format: json\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aivss.yaml"), data, 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Format)
}

func TestLoadConfigMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, config.Config{}, cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	data := []byte("{{invalid yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aivss.yml"), data, 0644))

	_, err := config.Load(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing")
}

func TestLoadConfigPrecedence(t *testing.T) {
	// .aivss.yml takes priority over .aivss.yaml
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aivss.yml"), []byte("format: json\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aivss.yaml"), []byte("format: sarif\n"), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Format)
}

func TestLoadConfigFilePath(t *testing.T) {
	// A file path resolves the config from its parent directory.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aivss.yml"), []byte("format: markdown\n"), 0644))
	reqPath := filepath.Join(dir, "request.yml")
	require.NoError(t, os.WriteFile(reqPath, []byte("{}\n"), 0644))

	cfg, err := config.Load(reqPath)
	require.NoError(t, err)
	require.Equal(t, "markdown", cfg.Format)
}
