package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type decodeFunc func([]byte, any) error

// decoders by file extension. Files with any other extension are tried
// against each format in order.
var decoders = []struct {
	format string
	exts   []string
	decode decodeFunc
}{
	{format: "yaml", exts: []string{".yaml", ".yml"}, decode: yaml.Unmarshal},
	{format: "json", exts: []string{".json"}, decode: json.Unmarshal},
	{format: "toml", exts: []string{".toml"}, decode: toml.Unmarshal},
}

// configFile represents the structure of the publishers configuration file.
type configFile struct {
	Publishers []PublisherConfig `json:"publishers" yaml:"publishers" toml:"publishers"`
}

// ConfigRegistry holds the publisher definitions loaded from a config file,
// in file order. It is read-only after LoadRegistry.
type ConfigRegistry struct {
	publishers []PublisherConfig
	byID       map[string]int
}

// LoadRegistry loads the publisher registry from a YAML, JSON or TOML file.
func LoadRegistry(path string) (*ConfigRegistry, error) {
	path = trim(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}

	file, err := decodeConfigFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(file.Publishers) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	reg := &ConfigRegistry{
		publishers: make([]PublisherConfig, 0, len(file.Publishers)),
		byID:       make(map[string]int, len(file.Publishers)),
	}
	for i, entry := range file.Publishers {
		cfg := entry.normalize()
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, dup := reg.byID[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		reg.byID[cfg.ID] = len(reg.publishers)
		reg.publishers = append(reg.publishers, cfg)
	}
	return reg, nil
}

func decodeConfigFile(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(trim(ext))

	var errs []error
	for _, d := range decoders {
		if ext != "" && !containsExt(d.exts, ext) && knownExt(ext) {
			continue
		}
		var file configFile
		err := d.decode(data, &file)
		if err == nil {
			return file, nil
		}
		errs = append(errs, fmt.Errorf("decode %s publishers: %w", d.format, err))
	}
	return configFile{}, fmt.Errorf("publishers file format not recognized (expected YAML, JSON or TOML): %w", errors.Join(errs...))
}

func knownExt(ext string) bool {
	for _, d := range decoders {
		if containsExt(d.exts, ext) {
			return true
		}
	}
	return false
}

func containsExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// ByID returns the publisher config by id.
func (r *ConfigRegistry) ByID(id string) (PublisherConfig, bool) {
	if r == nil {
		return PublisherConfig{}, false
	}
	i, ok := r.byID[trim(id)]
	if !ok {
		return PublisherConfig{}, false
	}
	return r.publishers[i], true
}

// All returns a copy of every configured publisher.
func (r *ConfigRegistry) All() []PublisherConfig {
	if r == nil {
		return nil
	}
	return append([]PublisherConfig(nil), r.publishers...)
}

// Enabled returns the publishers not switched off in the file.
func (r *ConfigRegistry) Enabled() []PublisherConfig {
	if r == nil {
		return nil
	}
	var out []PublisherConfig
	for _, cfg := range r.publishers {
		if cfg.EnabledValue() {
			out = append(out, cfg)
		}
	}
	return out
}
