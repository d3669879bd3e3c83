package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Error policies for a failed VCS query.
const (
	PolicyDegrade = "degrade" // substitute an empty revision and continue
	PolicyAbort   = "abort"   // skip header generation entirely
)

// Config represents the complete configuration for header generation.
type Config struct {
	VCS    VCSConfig    `yaml:"vcs"`
	Header HeaderConfig `yaml:"header"`
	Output OutputConfig `yaml:"output"`
}

// VCSConfig defines how the working-copy revision is queried.
type VCSConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	OnError string   `yaml:"on_error"`
}

// HeaderConfig defines the generated header's name and macro names.
type HeaderConfig struct {
	Filename      string `yaml:"filename"`
	RevisionMacro string `yaml:"revision_macro"`
	EnvMacro      string `yaml:"env_macro"`
	Template      string `yaml:"template"` // custom template path, empty = built-in
}

// OutputConfig defines where the generated header is written.
type OutputConfig struct {
	IncludeDirEnv string `yaml:"include_dir_env"`
	IncludeDir    string `yaml:"include_dir"` // hard override, beats the env variable
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		VCS: VCSConfig{
			Command: "svnversion",
			Args:    []string{"-n", "."},
			OnError: PolicyDegrade,
		},
		Header: HeaderConfig{
			Filename:      "Revision.h",
			RevisionMacro: "SVN_REV",
			EnvMacro:      "PIO_ENV",
		},
		Output: OutputConfig{
			IncludeDirEnv: "PLATFORMIO_INCLUDE_DIR",
		},
	}
}

// Load reads and parses a config file from the given path.
// A missing file is not an error: the tool must run with zero setup
// inside a build hook, so defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for required fields and consistency.
func (c *Config) Validate() error {
	if c.VCS.Command == "" {
		return fmt.Errorf("vcs.command is required")
	}
	if c.VCS.OnError != PolicyDegrade && c.VCS.OnError != PolicyAbort {
		return fmt.Errorf("vcs.on_error must be %q or %q, got %q",
			PolicyDegrade, PolicyAbort, c.VCS.OnError)
	}
	if c.Header.Filename == "" {
		return fmt.Errorf("header.filename is required")
	}
	if !isMacroName(c.Header.RevisionMacro) {
		return fmt.Errorf("header.revision_macro is not a valid macro name: %q", c.Header.RevisionMacro)
	}
	if !isMacroName(c.Header.EnvMacro) {
		return fmt.Errorf("header.env_macro is not a valid macro name: %q", c.Header.EnvMacro)
	}
	return nil
}

// isMacroName reports whether s is a valid C preprocessor identifier.
func isMacroName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// IncludeDirOverride returns the configured include directory override,
// consulting the hard override first, then the environment variable.
// The boolean reports whether any override is in effect.
func (c *Config) IncludeDirOverride() (string, bool) {
	if c.Output.IncludeDir != "" {
		return c.Output.IncludeDir, true
	}
	if c.Output.IncludeDirEnv != "" {
		if dir, ok := os.LookupEnv(c.Output.IncludeDirEnv); ok && dir != "" {
			return dir, true
		}
	}
	return "", false
}
