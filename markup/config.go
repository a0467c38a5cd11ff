// Package markup converts view trees to and from a compact tagged markup,
// and renders them onto an HTML node tree.
//
// Element kinds are chosen per tag name from a Config, or explicitly with a
// "kind:" prefix such as <attribute:b> or <ui:span>. Selection markers mark
// positions: "{" and "}" inside text, "[" and "]" between nodes.
package markup

import (
	_ "embed"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/viewtree/view"
)

//go:embed default.yaml
var defaultConfig []byte

// Filler describes the placeholder rendered at an element's filler offset.
type Filler struct {
	Name      string `yaml:"name"`
	Attribute string `yaml:"attribute"`
}

// Config maps element names to view kinds.
type Config struct {
	Default   string   `yaml:"default"`
	Container []string `yaml:"container"`
	Attribute []string `yaml:"attribute"`
	Empty     []string `yaml:"empty"`
	UI        []string `yaml:"ui"`
	Raw       []string `yaml:"raw"`
	Editable  []string `yaml:"editable"`
	Filler    Filler   `yaml:"filler"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg, err := decodeConfig(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("markup: invalid default config: %v", err))
	}
	return cfg
}

// LoadConfig reads a YAML configuration. Missing keys keep their defaults.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding markup config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	if _, ok := kindByPrefix[c.Default]; !ok {
		return fmt.Errorf("markup config: unknown default kind %q", c.Default)
	}
	if c.Filler.Name == "" {
		return fmt.Errorf("markup config: filler name is empty")
	}
	return nil
}

// KindOf returns the view kind used for elements named name.
func (c *Config) KindOf(name string) view.Kind {
	switch {
	case slices.Contains(c.Attribute, name):
		return view.KindAttribute
	case slices.Contains(c.Empty, name):
		return view.KindEmpty
	case slices.Contains(c.UI, name):
		return view.KindUI
	case slices.Contains(c.Raw, name):
		return view.KindRaw
	case slices.Contains(c.Editable, name):
		return view.KindEditable
	case slices.Contains(c.Container, name):
		return view.KindContainer
	default:
		return kindByPrefix[c.Default]
	}
}

var kindByPrefix = map[string]view.Kind{
	"container": view.KindContainer,
	"attribute": view.KindAttribute,
	"empty":     view.KindEmpty,
	"ui":        view.KindUI,
	"raw":       view.KindRaw,
	"editable":  view.KindEditable,
}

func prefixOf(kind view.Kind) string {
	if kind == view.KindRoot {
		return "editable"
	}
	for prefix, k := range kindByPrefix {
		if k == kind {
			return prefix
		}
	}
	return "container"
}
