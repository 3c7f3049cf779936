// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/daily-reading/internal/levels"
	"gopkg.in/yaml.v3"
)

// DefaultSeed seeds the generation run's random source
const DefaultSeed int64 = 20260214

// DatabaseURLEnv overrides database_url when set
const DatabaseURLEnv = "DAILY_READING_DATABASE_URL"

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	OutputDir        string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`                 // Root of the per-level exercise directories
	NonfictionDir    string `json:"nonfiction_dir,omitempty" yaml:"nonfiction_dir,omitempty"`         // Directory of nonfiction JSON files
	LiteratureDir    string `json:"literature_dir,omitempty" yaml:"literature_dir,omitempty"`         // Directory of literature md/txt/html files
	SpeechWritingPDF string `json:"speech_writing_pdf,omitempty" yaml:"speech_writing_pdf,omitempty"` // Extracted text of the speech/writing workbook
	GrammarPDF       string `json:"grammar_pdf,omitempty" yaml:"grammar_pdf,omitempty"`               // Extracted text of the grammar workbook

	// Generation
	Seed             int64    `json:"seed,omitempty" yaml:"seed,omitempty"`
	Levels           []string `json:"levels,omitempty" yaml:"levels,omitempty" validate:"dive,level"`             // Levels to generate, all when empty
	ForceLevels      []string `json:"force_levels,omitempty" yaml:"force_levels,omitempty" validate:"dive,level"` // Levels regenerated even when files exist
	ExamCutThreshold int      `json:"exam_cut_threshold,omitempty" yaml:"exam_cut_threshold,omitempty" validate:"gte=0"`
	PageMinRunes     int      `json:"page_min_runes,omitempty" yaml:"page_min_runes,omitempty" validate:"gte=0"`

	// Behavior
	LogMode     string `json:"log_mode,omitempty" yaml:"log_mode,omitempty" validate:"omitempty,oneof=prod dev quiet"`
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`           // Print detailed summaries
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		OutputDir:        "daily-reading",
		NonfictionDir:    filepath.Join("sources", "nonfiction"),
		LiteratureDir:    filepath.Join("sources", "literature"),
		SpeechWritingPDF: filepath.Join("sources", "speech_writing.txt"),
		GrammarPDF:       filepath.Join("sources", "grammar.txt"),
		Seed:             DefaultSeed,
		LogMode:          "prod",
	}
}

// LoadConfig loads configuration from a JSON file, or YAML when the file ends in
// .yaml or .yml. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		_, err := levels.Lookup(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by defaults after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.NonfictionDir != "" && c.NonfictionDir == c.LiteratureDir {
		return fmt.Errorf("config error: 'nonfiction_dir' and 'literature_dir' must differ")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.NonfictionDir == "" {
		result.NonfictionDir = defaults.NonfictionDir
	}
	if result.LiteratureDir == "" {
		result.LiteratureDir = defaults.LiteratureDir
	}
	if result.SpeechWritingPDF == "" {
		result.SpeechWritingPDF = defaults.SpeechWritingPDF
	}
	if result.GrammarPDF == "" {
		result.GrammarPDF = defaults.GrammarPDF
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Numeric fields: use default if zero
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if result.ExamCutThreshold == 0 {
		result.ExamCutThreshold = defaults.ExamCutThreshold
	}
	if result.PageMinRunes == 0 {
		result.PageMinRunes = defaults.PageMinRunes
	}

	// Slices: use default if empty
	if len(result.Levels) == 0 {
		result.Levels = defaults.Levels
	}
	if len(result.ForceLevels) == 0 {
		result.ForceLevels = defaults.ForceLevels
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv() {
	if url := os.Getenv(DatabaseURLEnv); url != "" {
		c.DatabaseURL = url
	}
}

// Load reads path when non-empty, fills defaults, applies the environment and validates
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	merged := cfg.MergeWithDefaults(Defaults())
	merged.ApplyEnv()
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
