// Package levels stores scenes as lists of saved entities and prefab
// placements.
package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/scaffold/ecs"
)

//go:embed *.json
var LevelsFS embed.FS

// ErrLevelNotFound is returned when no level file matches a name.
var ErrLevelNotFound = errors.New("levels: level not found")

// Dir is the on-disk directory checked before the embedded levels.
var Dir = "levels"

type Level struct {
	Name     string           `json:"name"`
	Camera   [2]float64       `json:"camera"`
	Entities []ecs.EntityData `json:"entities,omitempty"`
	Prefabs  []Placement      `json:"prefabs,omitempty"`
}

// Placement puts an instance of a prefab at a world position.
type Placement struct {
	Prefab   string     `json:"prefab"`
	Position [2]float64 `json:"position"`
}

// LoadLevel reads the named level, from Dir when present, else embedded. The
// .json extension is optional.
func LoadLevel(name string) (*Level, error) {
	file := levelFile(name)
	data, err := os.ReadFile(filepath.Join(Dir, file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Decode(data)
}

// Decode parses a level document.
func Decode(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level: %w", err)
	}
	return &lvl, nil
}

// SaveLevel writes lvl as indented JSON to path, creating parent
// directories.
func SaveLevel(path string, lvl *Level) error {
	data, err := json.MarshalIndent(lvl, "", "  ")
	if err != nil {
		return fmt.Errorf("levels: marshal %s: %w", lvl.Name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	return nil
}

// Names lists the embedded level names.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	return out
}

// Path returns where SaveLevel should write the named level on disk.
func Path(name string) string {
	return filepath.Join(Dir, levelFile(name))
}

func levelFile(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}
