package limits

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Overrides is the on-disk format for custom model limits. Runtime upserts
// are not persisted, so deployments that need custom models across restarts
// keep them in an override file and merge it at startup:
//
//	reg := limits.NewRegistry()
//	if err := reg.LoadOverrides("limits.yaml"); err != nil { ... }
//
// YAML and TOML are both accepted, selected by file extension.
type Overrides struct {
	Models []OverrideEntry `yaml:"models" toml:"models" json:"models"`
}

// OverrideEntry describes one custom model.
type OverrideEntry struct {
	Provider string `yaml:"provider" toml:"provider" json:"provider"`
	Model    string `yaml:"model" toml:"model" json:"model"`

	ModelLimits `yaml:",inline"`
}

// ParseOverrides decodes override data. Format is "yaml" or "toml".
func ParseOverrides(data []byte, format string) (Overrides, error) {
	var o Overrides
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &o); err != nil {
			return Overrides{}, fmt.Errorf("parse yaml overrides: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &o); err != nil {
			return Overrides{}, fmt.Errorf("parse toml overrides: %w", err)
		}
	default:
		return Overrides{}, fmt.Errorf("%w: unsupported format %q", ErrInvalidOverride, format)
	}
	return o, nil
}

// LoadOverrides reads an override file and merges every entry into the
// registry via UpsertModel. The extension picks the format: .yaml/.yml or
// .toml. Entries with an unknown provider or a missing model id are
// rejected before anything is applied, so a bad file never half-merges.
func (r *Registry) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read overrides: %w", err)
	}

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	case ".toml":
		format = "toml"
	default:
		return fmt.Errorf("%w: unsupported extension %q", ErrInvalidOverride, filepath.Ext(path))
	}

	o, err := ParseOverrides(data, format)
	if err != nil {
		return err
	}
	return r.ApplyOverrides(o)
}

// ApplyOverrides merges parsed overrides into the registry.
// Validation is all-or-nothing: the registry is untouched on error.
func (r *Registry) ApplyOverrides(o Overrides) error {
	type resolved struct {
		provider Provider
		model    string
		limits   ModelLimits
	}

	entries := make([]resolved, 0, len(o.Models))
	for i, e := range o.Models {
		provider, err := ParseProvider(e.Provider)
		if err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrInvalidOverride, i, err)
		}
		if e.Model == "" {
			return fmt.Errorf("%w: entry %d: missing model id", ErrInvalidOverride, i)
		}
		entries = append(entries, resolved{provider, e.Model, e.ModelLimits})
	}

	for _, e := range entries {
		r.UpsertModel(e.provider, e.model, e.limits)
	}
	return nil
}
