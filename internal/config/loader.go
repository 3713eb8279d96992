package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".subfuzz"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File holds fuzzer-option defaults and per-target overrides loaded from
// the YAML configuration file. Overrides are merged onto the defaults at
// job-construction time; CLI passthrough arguments still win over both
// because they are appended last on the command line.
type File struct {
	// Defaults applies to every target unless overridden.
	Defaults TargetOverride `yaml:"defaults"`

	// Targets maps normalized target text to its override block.
	Targets map[string]TargetOverride `yaml:"targets"`
}

// TargetOverride adjusts fuzzer options for one target (or for all targets
// when used as the defaults block). Zero values mean "no override".
type TargetOverride struct {
	// ExtraArgs are appended to the fuzzer command line for this target,
	// before CLI passthrough arguments.
	ExtraArgs []string `yaml:"extra_args"`

	// MatchCodes replaces the status-code match filter.
	MatchCodes string `yaml:"match_codes"`

	// RecursionDepth replaces the recursive crawl depth when positive.
	RecursionDepth int `yaml:"recursion_depth"`

	// UserAgent replaces the User-Agent header.
	UserAgent string `yaml:"user_agent"`
}

// LoadConfigFile loads overrides from a YAML file. If the file does not
// exist it returns ErrConfigNotFound; callers decide whether that matters
// based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Targets == nil {
		cf.Targets = make(map[string]TargetOverride)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file:
// 1. the explicit path, if given
// 2. .subfuzz in the current directory
// 3. .subfuzz in the user's home directory
//
// Returns the path if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// For returns the effective override for a target: the defaults block with
// the target's own block merged on top. Non-zero fields win; ExtraArgs
// concatenate so a target can extend, not just replace, the defaults.
func (f *File) For(target string) TargetOverride {
	if f == nil {
		return TargetOverride{}
	}

	result := f.Defaults
	override, ok := f.Targets[target]
	if !ok {
		return result
	}

	if len(override.ExtraArgs) > 0 {
		result.ExtraArgs = append(append([]string(nil), result.ExtraArgs...), override.ExtraArgs...)
	}
	if override.MatchCodes != "" {
		result.MatchCodes = override.MatchCodes
	}
	if override.RecursionDepth > 0 {
		result.RecursionDepth = override.RecursionDepth
	}
	if override.UserAgent != "" {
		result.UserAgent = override.UserAgent
	}

	return result
}
