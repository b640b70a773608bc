package keymap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type file struct {
	Bindings []Spec `toml:"bindings" yaml:"bindings"`
}

// LoadFile reads binding specs from a TOML or YAML file, chosen by extension.
// Unknown actions are rejected when known is non-nil.
func LoadFile(path string, known map[Action]struct{}) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported keymap format %q", ext)
	}
	for i, spec := range f.Bindings {
		if _, err := ParseChord(spec.Keys); err != nil {
			return nil, fmt.Errorf("%s: binding %d: %w", path, i, err)
		}
		if known == nil {
			continue
		}
		if _, ok := known[spec.Action]; !ok {
			return nil, fmt.Errorf("%s: binding %d: unknown action %q", path, i, spec.Action)
		}
	}
	return f.Bindings, nil
}
