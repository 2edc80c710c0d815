package emit

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/coregx/scrive/optimize"
)

// Config controls serialization.
//
// Example:
//
//	config := emit.DefaultConfig()
//	config.GroupBranchSequences = false // emit ab|cd instead of (?:ab)|(?:cd)
//	res, err := emit.Compile(tree, config)
type Config struct {
	// Optimize runs optimize.Optimize on the tree before emission.
	// Default: true
	Optimize bool `yaml:"optimize"`

	// FoldThreshold is the shortest run of consecutive code points written
	// as a range inside a character class. Only used when Optimize is set.
	// Default: 3
	FoldThreshold int `yaml:"fold_threshold"`

	// GroupBranchSequences wraps every multi-element sequence that is a
	// branch of an alternation in a non-capturing group.
	// Default: true
	GroupBranchSequences bool `yaml:"group_branch_sequences"`

	// MaxDepth limits the nesting depth of the tree.
	// Default: 1000
	MaxDepth int `yaml:"max_depth"`
}

// DefaultConfig returns the default serialization configuration.
func DefaultConfig() Config {
	return Config{
		Optimize:             true,
		FoldThreshold:        optimize.DefaultFoldThreshold,
		GroupBranchSequences: true,
		MaxDepth:             1000,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - FoldThreshold: 2 to 16
//   - MaxDepth: 10 to 10,000
func (c Config) Validate() error {
	if c.FoldThreshold < 2 || c.FoldThreshold > 16 {
		return &ConfigError{
			Field:   "FoldThreshold",
			Message: "must be between 2 and 16",
		}
	}
	if c.MaxDepth < 10 || c.MaxDepth > 10_000 {
		return &ConfigError{
			Field:   "MaxDepth",
			Message: "must be between 10 and 10,000",
		}
	}
	return nil
}

// ParseConfig decodes a YAML document over DefaultConfig and validates the
// result. Keys that are absent keep their default values.
//
// Example:
//
//	config, err := emit.ParseConfig([]byte("fold_threshold: 4\nmax_depth: 200\n"))
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("scrive: parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "scrive: invalid config: " + e.Field + ": " + e.Message
}
