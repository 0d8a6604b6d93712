package repair

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gnolang/cfix/internal"
	tt "github.com/gnolang/cfix/internal/types"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no
// configuration path is given.
const DefaultConfigFile = ".cfix.yaml"

// Config represents the overall configuration with a name and the per-rule
// settings.
type Config struct {
	Name   string                   `yaml:"name" validate:"required"`
	Rules  map[string]tt.ConfigRule `yaml:"rules" validate:"dive,keys,rulename,endkeys"`
	Reflow ReflowConfig             `yaml:"reflow"`
	Cache  CacheConfig              `yaml:"cache"`

	// path is the file the configuration was read from, if any.
	path string
}

// ReflowConfig controls re-indentation of fixed output.
type ReflowConfig struct {
	Enabled bool `yaml:"enabled"`
	Indent  int  `yaml:"indent" validate:"omitempty,min=1,max=8"`
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir" validate:"required_if=Enabled true"`
	MaxAge  time.Duration `yaml:"max_age" validate:"gte=0"`
}

// Path returns the file the configuration was loaded from, or "".
func (c Config) Path() string {
	return c.path
}

// DefaultConfig enables every rule with its built-in severity.
func DefaultConfig() Config {
	return Config{
		Name:   "cfix",
		Rules:  internal.DefaultRules(),
		Reflow: ReflowConfig{Indent: 4},
		Cache: CacheConfig{
			Dir:    filepath.Join(".cfix", "cache"),
			MaxAge: internal.DefaultCacheMaxAge,
		},
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	known := make(map[string]bool)
	for _, name := range internal.RuleNames() {
		known[name] = true
	}
	_ = validate.RegisterValidation("rulename", func(fl validator.FieldLevel) bool {
		return known[fl.Field().String()]
	})
	return validate
}

// Validate reports unknown rule names and out-of-range settings.
func (c Config) Validate() error {
	return newValidator().Struct(c)
}

// LoadConfig reads the configuration at path. An empty path falls back to
// DefaultConfigFile when it exists and to DefaultConfig otherwise. Rules
// missing from the file keep their default severity.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return DefaultConfig(), nil
		}
		path = DefaultConfigFile
	}

	config, err := parseConfigurationFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return config, nil
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	config := DefaultConfig()
	config.path = configurationPath

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, fmt.Errorf("error opening configuration: %w", err)
	}
	defer f.Close()

	rules := config.Rules
	config.Rules = nil
	if err := yaml.NewDecoder(f).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing configuration: %w", err)
	}
	for name, rule := range config.Rules {
		rules[name] = rule
	}
	config.Rules = rules

	return config, nil
}

// WriteConfig writes config as YAML to path.
func WriteConfig(path string, config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing configuration: %w", err)
	}
	return nil
}
