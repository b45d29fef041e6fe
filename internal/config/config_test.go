package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirWithConfig runs Load from a temp working directory holding the given
// config.yaml content (empty content means no file at all).
func chdirWithConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "output", cfg.Paths.OutputDir)
	assert.Equal(t, "Reference", cfg.Pipeline.SourceSheet)
	assert.Equal(t, 20_000, cfg.Pipeline.BatchSize)
	assert.Equal(t, 1, cfg.Pipeline.Workers)
	assert.Equal(t, "US-ACM", cfg.Pipeline.TargetStronghold)
	assert.Equal(t, "dataset_USA.csv", cfg.Pipeline.OutputFile)

	// Rules must be populated by defaults
	assert.NotEmpty(t, cfg.Rules.ColumnMap)
	assert.NotEmpty(t, cfg.Rules.CreditTypes)
	assert.NotEmpty(t, cfg.Rules.DebitTypes)
	assert.NotEmpty(t, cfg.Rules.DivisionLabels)
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
}

func TestValidateRejectsBatchSizeZero(t *testing.T) {
	cfg := Default()
	cfg.Pipeline.BatchSize = 0
	assert.Error(t, cfg.validate())
}

func TestValidateRejectsMissingTargetStronghold(t *testing.T) {
	cfg := Default()
	cfg.Pipeline.TargetStronghold = ""
	assert.Error(t, cfg.validate())
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	chdirWithConfig(t, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBatchSize, cfg.Pipeline.BatchSize)
	assert.Equal(t, DefaultTargetStronghold, cfg.Pipeline.TargetStronghold)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	chdirWithConfig(t, `
paths:
  data_dir: /srv/extracts
pipeline:
  batch_size: 5
  target_stronghold: CA-ACM
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/extracts", cfg.Paths.DataDir)
	assert.Equal(t, 5, cfg.Pipeline.BatchSize)
	assert.Equal(t, "CA-ACM", cfg.Pipeline.TargetStronghold)

	// fields the file leaves out fall back to defaults
	assert.Equal(t, DefaultOutputDir, cfg.Paths.OutputDir)
	assert.Equal(t, DefaultSourceSheet, cfg.Pipeline.SourceSheet)
	assert.Equal(t, DefaultWorkers, cfg.Pipeline.Workers)
	assert.NotEmpty(t, cfg.Rules.DivisionLabels)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chdirWithConfig(t, `
pipeline:
  batch_size: 5
  target_stronghold: CA-ACM
`)
	t.Setenv("CDM_PIPELINE_BATCH_SIZE", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Pipeline.BatchSize)
	// env is silent on the stronghold, so the file value stands
	assert.Equal(t, "CA-ACM", cfg.Pipeline.TargetStronghold)
}

func TestLoadFileRulesOverrideDefaults(t *testing.T) {
	chdirWithConfig(t, `
rules:
  credit_types: [ZCR, ZICR, ZXCR]
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Rules.IsCreditType("ZXCR"))
	// untouched tables keep their defaults
	assert.True(t, cfg.Rules.IsDebitType("ZDR"))
	assert.Equal(t, "Asfalto", cfg.Rules.DivisionLabel("4"))
}
