package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk prefab directory checked before the embedded copies, so
// edits show up without a rebuild.
var Dir = "prefabs"

// embedPrefix is the repo-relative directory the embedded files came from.
const embedPrefix = "prefabs/"

// Load reads a prefab file by name.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript reads a tengo script by name.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	data, err := ScriptsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	return data, nil
}

// Scripts serves LoadScript to script systems.
type Scripts struct{}

func (Scripts) Script(name string) ([]byte, error) {
	return LoadScript(name)
}

// ScriptName returns the name a script path on disk is loaded under.
func ScriptName(file string) string {
	return filepath.Base(filepath.ToSlash(file))
}

// cleanPrefabPath maps "hero.yaml" or "prefabs/hero.yaml" to the embedded
// name "hero.yaml".
func cleanPrefabPath(name string) string {
	return trimDirs(filepath.ToSlash(name), embedPrefix)
}

// cleanScriptPath maps any of "wander.tengo", "scripts/wander.tengo" or
// "prefabs/scripts/wander.tengo" to "scripts/wander.tengo".
func cleanScriptPath(name string) string {
	rel := trimDirs(filepath.ToSlash(name), embedPrefix, "scripts/")
	if rel == "" {
		return ""
	}
	return path.Join("scripts", rel)
}

func trimDirs(name string, prefixes ...string) string {
	for _, p := range prefixes {
		name = strings.TrimPrefix(name, p)
	}
	return name
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
