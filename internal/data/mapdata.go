package data

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadMap reads a map description. The format follows the file extension:
// .toml or .yaml/.yml.
func LoadMap(path string) (*Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	m, err := ParseMap(raw, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse map %s: %w", path, err)
	}
	return m, nil
}

// SaveMap writes m to path in the format named by its extension.
func SaveMap(m *Map, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map %s: %w", path, err)
	}
	if err := m.Encode(f, filepath.Ext(path)); err != nil {
		f.Close()
		return fmt.Errorf("write map %s: %w", path, err)
	}
	return f.Close()
}

// ParseMap decodes a map description from raw bytes. ext selects the format
// and is matched case-insensitively, with or without the leading dot.
func ParseMap(raw []byte, ext string) (*Map, error) {
	var m Map
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "toml":
		if err := toml.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported map format %q", ext)
	}
	m.normalize()
	return &m, nil
}

// Count returns the number of object and physics tags defined.
func (m *Map) Count() (objects, physics int) {
	return len(m.Objects), len(m.Physics)
}

// Encode writes m as TOML or YAML. Map keys come out sorted in both formats.
func (m *Map) Encode(w io.Writer, ext string) error {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "toml":
		return toml.NewEncoder(w).Encode(m)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported map format %q", ext)
	}
}

// Problems lists references that cannot be spawned: a missing player object,
// scenery naming an unknown object type and objects naming an unknown physics
// tag. Spawning skips such content, so a map with problems still loads.
func (m *Map) Problems() []string {
	var out []string
	if _, ok := m.Object(m.Globals.PlayerObject); !ok {
		out = append(out, fmt.Sprintf("globals.player_object: unknown object %q", m.Globals.PlayerObject))
	}
	for i, s := range m.Scenario.Scenery {
		if _, ok := m.Object(s.ObjectType); !ok {
			out = append(out, fmt.Sprintf("scenario.scenery[%d]: unknown object %q", i, s.ObjectType))
		}
	}

	ids := make([]TagID, 0, len(m.Objects))
	for id := range m.Objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		obj := m.Objects[id]
		if obj.Physics == nil {
			continue
		}
		if _, ok := m.PhysicsTag(*obj.Physics); !ok {
			out = append(out, fmt.Sprintf("object.%s: unknown physics %q", id, *obj.Physics))
		}
	}
	return out
}
