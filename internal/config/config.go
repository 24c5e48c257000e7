// Package config loads the optional atlas.yaml overlay described in
// SPEC_FULL.md §1, applied over pkg/atlas's in-code Runtime defaults
// by atlas.WithConfigFile, using goccy/go-yaml — the same YAML library already present
// in the teacher's dependency graph.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// PermissionConfig mirrors internal/permissions.Policy in a
// YAML-friendly shape: per capability, an empty list denies, a list
// holding only "*" allows everything, and any other list is a set of
// glob patterns to allow.
type PermissionConfig struct {
	Filesystem  []string `yaml:"filesystem,omitempty"`
	Network     []string `yaml:"network,omitempty"`
	Process     []string `yaml:"process,omitempty"`
	FFI         []string `yaml:"ffi,omitempty"`
	Environment []string `yaml:"environment,omitempty"`
	Reflection  []string `yaml:"reflection,omitempty"`
}

// File is the on-disk shape of atlas.yaml.
type File struct {
	MaxCallDepth    int               `yaml:"maxCallDepth,omitempty"`
	Trace           bool              `yaml:"trace,omitempty"`
	DefaultPrelude  *bool             `yaml:"defaultPrelude,omitempty"`
	Engine          string            `yaml:"engine,omitempty"` // "interp" or "vm"
	Permissions     PermissionConfig  `yaml:"permissions,omitempty"`
}

// Load reads and parses path. A missing file is not an error — the
// runtime works with zero configuration (SPEC_FULL.md §1) — it returns
// a zero-value File and ok=false.
func Load(path string) (*File, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, false, nil
		}
		return nil, false, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, false, err
	}
	return &f, true, nil
}
