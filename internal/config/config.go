package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration
type Config struct {
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Rules    Rules          `yaml:"rules"`
}

// PathsConfig contains file system paths configuration. Defaults live in
// Default(), not in struct tags: envconfig defaults would mark every field
// as set and mask file values during the merge.
type PathsConfig struct {
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	OutputDir     string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	ReferenceFile string `yaml:"reference_file" envconfig:"REFERENCE_FILE" validate:"required"`
}

// PipelineConfig contains the batch-processing settings
type PipelineConfig struct {
	SourceSheet      string `yaml:"source_sheet" envconfig:"SOURCE_SHEET" validate:"required"`
	BatchSize        int    `yaml:"batch_size" envconfig:"BATCH_SIZE" validate:"min=1"`
	Workers          int    `yaml:"workers" envconfig:"WORKERS" validate:"min=1"`
	TargetStronghold string `yaml:"target_stronghold" envconfig:"TARGET_STRONGHOLD" validate:"required"`
	OutputFile       string `yaml:"output_file" envconfig:"OUTPUT_FILE" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Load loads configuration in precedence order: environment variables over
// an optional YAML file over the built-in defaults. Business rules come
// from the file when present, otherwise the built-in defaults.
func Load() (*Config, error) {
	cfg := *Default()

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(cfg, *fileConfig)
	}

	var envConfig Config
	if err := envconfig.Process("CDM", &envConfig); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	cfg = mergeConfigs(cfg, envConfig)

	cfg.Rules.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs layers override on top of base: override fields win when
// set, base fills the rest. Called twice by Load, file over defaults and
// then env over that, so precedence ends up env > file > defaults.
func mergeConfigs(base, override Config) Config {
	if override.Paths.DataDir == "" {
		override.Paths.DataDir = base.Paths.DataDir
	}
	if override.Paths.OutputDir == "" {
		override.Paths.OutputDir = base.Paths.OutputDir
	}
	if override.Paths.ReferenceFile == "" {
		override.Paths.ReferenceFile = base.Paths.ReferenceFile
	}
	if override.Pipeline.SourceSheet == "" {
		override.Pipeline.SourceSheet = base.Pipeline.SourceSheet
	}
	if override.Pipeline.BatchSize == 0 {
		override.Pipeline.BatchSize = base.Pipeline.BatchSize
	}
	if override.Pipeline.Workers == 0 {
		override.Pipeline.Workers = base.Pipeline.Workers
	}
	if override.Pipeline.TargetStronghold == "" {
		override.Pipeline.TargetStronghold = base.Pipeline.TargetStronghold
	}
	if override.Pipeline.OutputFile == "" {
		override.Pipeline.OutputFile = base.Pipeline.OutputFile
	}
	if override.Logging.Level == "" {
		override.Logging.Level = base.Logging.Level
	}
	if override.Logging.Format == "" {
		override.Logging.Format = base.Logging.Format
	}
	if override.Logging.Output == "" {
		override.Logging.Output = base.Logging.Output
	}
	if override.Logging.FilePath == "" {
		override.Logging.FilePath = base.Logging.FilePath
	}

	// Rules are file-only; env cannot express the tables. Each table the
	// override leaves empty falls back per-table.
	if len(override.Rules.ColumnMap) == 0 {
		override.Rules.ColumnMap = base.Rules.ColumnMap
	}
	if len(override.Rules.LegacyAliases) == 0 {
		override.Rules.LegacyAliases = base.Rules.LegacyAliases
	}
	if len(override.Rules.CreditTypes) == 0 {
		override.Rules.CreditTypes = base.Rules.CreditTypes
	}
	if len(override.Rules.DebitTypes) == 0 {
		override.Rules.DebitTypes = base.Rules.DebitTypes
	}
	if len(override.Rules.DivisionLabels) == 0 {
		override.Rules.DivisionLabels = base.Rules.DivisionLabels
	}

	return override
}

// validate validates the configuration
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}

	return c.Rules.validate()
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{
		Paths: PathsConfig{
			DataDir:       DefaultDataDir,
			OutputDir:     DefaultOutputDir,
			ReferenceFile: DefaultReferenceFile,
		},
		Pipeline: PipelineConfig{
			SourceSheet:      DefaultSourceSheet,
			BatchSize:        DefaultBatchSize,
			Workers:          DefaultWorkers,
			TargetStronghold: DefaultTargetStronghold,
			OutputFile:       DefaultOutputFile,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/pipeline.log",
		},
	}
	cfg.Rules.applyDefaults()
	return cfg
}
