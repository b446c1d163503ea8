// Package config loads the hookdeps configuration file.
//
// A configuration names extra hooks and tunes reporting:
//
//	hooks:
//	  - name: useCustomEffect
//	    closureIndex: 0
//	    dependenciesIndex: 1
//	  - name: useStore
//	    stableResult: [1]
//	reportUnnecessaryDependencies: false
//
// YAML, TOML and JSON files are accepted; the format follows the extension.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/mpyw/hookdeps/internal/registry"
)

// Format is a configuration file syntax.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

var (
	// ErrUnknownFormat is returned for files whose extension names no format.
	ErrUnknownFormat = errors.New("unknown configuration format")
	// ErrNotFound is returned by Discover when no candidate exists.
	ErrNotFound = errors.New("configuration file not found")
)

// Candidates lists the file names Discover looks for, in order.
var Candidates = []string{
	".hookdeps.yaml",
	".hookdeps.yml",
	".hookdeps.toml",
	".hookdeps.json",
}

// Config is the decoded configuration.
type Config struct {
	Hooks []HookOption `yaml:"hooks" toml:"hooks" json:"hooks" validate:"dive"`
	// ReportUnnecessaryDependencies defaults to true when unset.
	ReportUnnecessaryDependencies *bool `yaml:"reportUnnecessaryDependencies" toml:"reportUnnecessaryDependencies" json:"reportUnnecessaryDependencies"`
}

// HookOption describes one user hook. Unset indices mean the hook has no
// such argument.
type HookOption struct {
	Name              string        `yaml:"name" toml:"name" json:"name" validate:"required,hookname"`
	ClosureIndex      *int          `yaml:"closureIndex" toml:"closureIndex" json:"closureIndex" validate:"omitempty,gte=0"`
	DependenciesIndex *int          `yaml:"dependenciesIndex" toml:"dependenciesIndex" json:"dependenciesIndex" validate:"omitempty,gte=0"`
	StableResult      *StableResult `yaml:"stableResult" toml:"stableResult" json:"stableResult"`
}

// FormatOf returns the format for a file name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Parse decodes and validates data.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case TOML:
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse TOML: unknown key %s", undecoded[0])
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the file at name from fs.
func Load(fs billy.Filesystem, name string) (*Config, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	data, err := util.ReadFile(fs, name)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Discover returns the first candidate file present in dir.
func Discover(fs billy.Filesystem, dir string) (string, error) {
	for _, name := range Candidates {
		p := fs.Join(dir, name)
		info, err := fs.Stat(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			return p, nil
		}
	}
	return "", ErrNotFound
}

// ReportUnnecessary tells whether unnecessary dependencies are reported.
func (c *Config) ReportUnnecessary() bool {
	if c == nil || c.ReportUnnecessaryDependencies == nil {
		return true
	}
	return *c.ReportUnnecessaryDependencies
}

// Overrides converts the hook options to registry overrides.
func (c *Config) Overrides() []registry.Override {
	if c == nil {
		return nil
	}
	overrides := make([]registry.Override, 0, len(c.Hooks))
	for _, h := range c.Hooks {
		overrides = append(overrides, h.Override())
	}
	return overrides
}

// Override converts one hook option.
func (h HookOption) Override() registry.Override {
	o := registry.Override{
		Name:              h.Name,
		ClosureIndex:      registry.NoIndex,
		DependenciesIndex: registry.NoIndex,
	}
	if h.ClosureIndex != nil {
		o.ClosureIndex = *h.ClosureIndex
	}
	if h.DependenciesIndex != nil {
		o.DependenciesIndex = *h.DependenciesIndex
	}
	if h.StableResult != nil {
		o.StableResult = registry.StableResult{
			Whole: h.StableResult.Whole,
			Slots: h.StableResult.Slots,
		}
	}
	return o
}
