package ecs

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/scaffold/common"
)

// ErrUnknownSystemKind is returned by a SystemFactory for a kind it does not
// know how to build.
var ErrUnknownSystemKind = errors.New("ecs: unknown system kind")

// EntityData is the persisted form of an entity.
type EntityData struct {
	ID         string       `json:"id"`
	Position   [2]float64   `json:"position"`
	SystemData []SystemData `json:"systemData"`
}

// SystemData is the persisted form of one system. On the wire the variant
// fields sit next to id and disabled in a single object.
type SystemData struct {
	ID       string
	Disabled bool
	Fields   json.RawMessage
}

// SystemFactory builds an empty system for a persisted kind.
type SystemFactory interface {
	New(kind string) (System, error)
}

// EncodeSystemData builds a SystemData from a kind, the shared disabled flag
// and a struct of variant fields.
func EncodeSystemData(kind string, disabled bool, fields any) (SystemData, error) {
	data := SystemData{ID: kind, Disabled: disabled}
	if fields == nil {
		return data, nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return SystemData{}, fmt.Errorf("ecs: encode %s: %w", kind, err)
	}
	data.Fields = raw
	return data, nil
}

// Decode unmarshals the variant fields into v.
func (d SystemData) Decode(v any) error {
	if len(d.Fields) == 0 {
		return nil
	}
	if err := json.Unmarshal(d.Fields, v); err != nil {
		return fmt.Errorf("ecs: decode %s: %w", d.ID, err)
	}
	return nil
}

func (d SystemData) MarshalJSON() ([]byte, error) {
	obj := map[string]json.RawMessage{}
	if len(d.Fields) > 0 {
		if err := json.Unmarshal(d.Fields, &obj); err != nil {
			return nil, fmt.Errorf("ecs: system %s fields must be an object: %w", d.ID, err)
		}
	}
	id, _ := json.Marshal(d.ID)
	disabled, _ := json.Marshal(d.Disabled)
	obj["id"] = id
	obj["disabled"] = disabled
	return json.Marshal(obj)
}

func (d *SystemData) UnmarshalJSON(b []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*d = SystemData{}
	if raw, ok := obj["id"]; ok {
		if err := json.Unmarshal(raw, &d.ID); err != nil {
			return fmt.Errorf("ecs: system id: %w", err)
		}
		delete(obj, "id")
	}
	if raw, ok := obj["disabled"]; ok {
		if err := json.Unmarshal(raw, &d.Disabled); err != nil {
			return fmt.Errorf("ecs: system %s disabled: %w", d.ID, err)
		}
		delete(obj, "disabled")
	}
	if len(obj) == 0 {
		return nil
	}
	fields, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	d.Fields = fields
	return nil
}

// Save captures the entity's id, position and every system's configuration.
func (e *Entity) Save() (EntityData, error) {
	data := EntityData{
		ID:         e.id,
		Position:   e.Position.Serialize(),
		SystemData: make([]SystemData, 0, len(e.order)),
	}
	for _, slot := range e.order {
		s := e.systems[slot]
		sd, err := s.Save()
		if err != nil {
			return EntityData{}, fmt.Errorf("ecs: save entity %s: %w", e.id, err)
		}
		data.SystemData = append(data.SystemData, sd)
	}
	return data, nil
}

// LoadEntity rebuilds an entity from data and queues it on w. Systems whose
// kind the factory does not know, or whose data fails to load, are logged and
// skipped.
func LoadEntity(w *World, data EntityData, factory SystemFactory, log *zap.Logger) *Entity {
	if log == nil {
		log = w.Logger()
	}
	e := NewEntityWithID(w, data.ID, common.Deserialize(data.Position))
	for _, sd := range data.SystemData {
		s, err := factory.New(sd.ID)
		if err != nil {
			log.Warn("skipping system", zap.String("entity", e.id), zap.String("kind", sd.ID), zap.Error(err))
			continue
		}
		if err := s.Load(sd); err != nil {
			log.Warn("skipping system", zap.String("entity", e.id), zap.String("kind", sd.ID), zap.Error(err))
			continue
		}
		e.AddSystem(s)
	}
	return e
}
