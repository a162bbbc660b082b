package pushvm

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds configuration for an interpreter
type Config struct {
	Debug         bool     `toml:"debug" yaml:"debug"`
	LogCategories []string `toml:"log_categories" yaml:"log_categories"`

	// Run ceilings
	EvalPushLimit int `toml:"eval_push_limit" yaml:"eval_push_limit"`
	MaxExecPoints int `toml:"max_exec_points" yaml:"max_exec_points"`

	// Random code generation
	MaxPointsInRandomExpressions int     `toml:"max_points_in_random_expressions" yaml:"max_points_in_random_expressions"`
	MinRandomInteger             int64   `toml:"min_random_integer" yaml:"min_random_integer"`
	MaxRandomInteger             int64   `toml:"max_random_integer" yaml:"max_random_integer"`
	MinRandomFloat               float64 `toml:"min_random_float" yaml:"min_random_float"`
	MaxRandomFloat               float64 `toml:"max_random_float" yaml:"max_random_float"`
	NewERCNameProbability        float64 `toml:"new_erc_name_probability" yaml:"new_erc_name_probability"`
	Seed                         int64   `toml:"seed" yaml:"seed"`

	// Instruction availability
	EnabledTypes []string      `toml:"enabled_types" yaml:"enabled_types"`
	AllowExec    bool          `toml:"allow_exec" yaml:"allow_exec"`
	ExecTimeout  time.Duration `toml:"exec_timeout" yaml:"exec_timeout"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:                        false,
		EvalPushLimit:                1000,
		MaxExecPoints:                1000,
		MaxPointsInRandomExpressions: 100,
		MinRandomInteger:             -10,
		MaxRandomInteger:             10,
		MinRandomFloat:               -1.0,
		MaxRandomFloat:               1.0,
		NewERCNameProbability:        0.001,
		Seed:                         0,
		EnabledTypes:                 []string{"BOOLEAN", "CODE", "EXEC", "FLOAT", "INDEX", "INTEGER", "NAME"},
		AllowExec:                    false,
		ExecTimeout:                  10 * time.Second,
	}
}

// ConfigError describes an invalid configuration value
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// LoadConfig reads a TOML or YAML file (chosen by extension) over the
// defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, &ConfigError{Field: "path", Message: fmt.Sprintf("unsupported config format %q", filepath.Ext(path))}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes swapped bounds and rejects values the interpreter
// cannot use
func (c *Config) Validate() error {
	if c.MinRandomInteger > c.MaxRandomInteger {
		c.MinRandomInteger, c.MaxRandomInteger = c.MaxRandomInteger, c.MinRandomInteger
	}
	if c.MinRandomFloat > c.MaxRandomFloat {
		c.MinRandomFloat, c.MaxRandomFloat = c.MaxRandomFloat, c.MinRandomFloat
	}
	if c.EvalPushLimit < 0 {
		return &ConfigError{Field: "eval_push_limit", Message: "must not be negative"}
	}
	if c.MaxExecPoints < 0 {
		return &ConfigError{Field: "max_exec_points", Message: "must not be negative"}
	}
	if c.NewERCNameProbability < 0 || c.NewERCNameProbability > 1 {
		return &ConfigError{Field: "new_erc_name_probability", Message: "must be within [0, 1]"}
	}
	for _, name := range c.EnabledTypes {
		if _, ok := ParseStackType(name); !ok {
			return &ConfigError{Field: "enabled_types", Message: fmt.Sprintf("unknown type %q", name)}
		}
	}
	return nil
}

// enabledTypes resolves EnabledTypes, adding SYSTEM when exec is allowed
func (c *Config) enabledTypes() []StackType {
	var types []StackType
	for _, name := range c.EnabledTypes {
		if t, ok := ParseStackType(name); ok && t != TypeSystem {
			types = append(types, t)
		}
	}
	if c.AllowExec {
		types = append(types, TypeSystem)
	}
	return types
}
