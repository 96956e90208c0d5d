// Package defaults provides the embedded default settings and bump label definitions.
package defaults

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yml
var defaultsYAML []byte

// Defaults holds the parsed embedded defaults.
// Config is left as a raw node so the config package can decode it into its own type.
type Defaults struct {
	Config yaml.Node  `yaml:"config"`
	Labels []LabelDef `yaml:"labels"`
}

// LabelDef describes a bump label
type LabelDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

// Load parses and returns the embedded defaults.
func Load() (*Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// MustLoad parses and returns the embedded defaults, panicking on error.
func MustLoad() *Defaults {
	d, err := Load()
	if err != nil {
		panic("failed to load embedded defaults: " + err.Error())
	}
	return d
}

// GetLabel returns the label definition for a given name, or nil if not found.
func (d *Defaults) GetLabel(name string) *LabelDef {
	for i := range d.Labels {
		if d.Labels[i].Name == name {
			return &d.Labels[i]
		}
	}
	return nil
}

// GetLabelNames returns the bump label names, strongest first.
func (d *Defaults) GetLabelNames() []string {
	names := make([]string, len(d.Labels))
	for i := range d.Labels {
		names[i] = d.Labels[i].Name
	}
	return names
}

// IsBumpLabel returns true if the given label name is one of the bump labels.
func (d *Defaults) IsBumpLabel(name string) bool {
	return d.GetLabel(name) != nil
}
