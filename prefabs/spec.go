package prefabs

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/ecs"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntitySpec is an entity template. Each system is a map holding the same
// keys the system saves, so a prefab reads like a saved entity in YAML.
type EntitySpec struct {
	Name     string           `yaml:"name"`
	Saveable *bool            `yaml:"saveable"`
	Systems  []map[string]any `yaml:"systems"`
}

func LoadEntitySpec(filename string) (EntitySpec, error) {
	return LoadSpec[EntitySpec](filename)
}

// EntityData converts the template to saved-entity form at pos. The id is
// left empty so every instance gets a fresh one.
func (s EntitySpec) EntityData(pos common.Vec) (ecs.EntityData, error) {
	data := ecs.EntityData{Position: pos.Serialize()}
	for i, raw := range s.Systems {
		sd, err := DecodeSystemSpec(raw)
		if err != nil {
			return ecs.EntityData{}, fmt.Errorf("prefabs: %s system %d: %w", s.Name, i, err)
		}
		data.SystemData = append(data.SystemData, sd)
	}
	return data, nil
}

// DecodeSystemSpec converts one YAML system map to SystemData.
func DecodeSystemSpec(raw map[string]any) (ecs.SystemData, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return ecs.SystemData{}, err
	}
	var sd ecs.SystemData
	if err := json.Unmarshal(b, &sd); err != nil {
		return ecs.SystemData{}, err
	}
	if sd.ID == "" {
		return ecs.SystemData{}, fmt.Errorf("missing system id")
	}
	return sd, nil
}

// Instantiate builds the named prefab at pos and queues it on w.
func Instantiate(w *ecs.World, filename string, pos common.Vec, factory ecs.SystemFactory, log *zap.Logger) (*ecs.Entity, error) {
	spec, err := LoadEntitySpec(filename)
	if err != nil {
		return nil, err
	}
	data, err := spec.EntityData(pos)
	if err != nil {
		return nil, err
	}
	e := ecs.LoadEntity(w, data, factory, log)
	if spec.Saveable != nil {
		e.Saveable = *spec.Saveable
	}
	return e, nil
}
