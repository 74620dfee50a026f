// Package assets resolves texture and data keys against the embedded assets,
// with an optional directory on disk taking precedence.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/milk9111/scaffold/ecs/render"
)

// ErrUnknownAsset is returned for keys that resolve to no file.
var ErrUnknownAsset = errors.New("assets: unknown asset")

// Manager loads assets by key and serves them after loading. Lookups of keys
// that were never loaded are logged and return nil.
type Manager struct {
	fsys        fs.FS
	overrideDir string
	decode      render.Decoder

	preload  []string
	textures map[string]render.Texture
	data     map[string][]byte

	log *zap.Logger
}

// NewManager serves assets from fsys. decode turns image files into textures.
func NewManager(fsys fs.FS, decode render.Decoder, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		fsys:     fsys,
		decode:   decode,
		textures: make(map[string]render.Texture),
		data:     make(map[string][]byte),
		log:      log,
	}
}

// NewEmbeddedManager serves the assets built into the binary.
func NewEmbeddedManager(decode render.Decoder, log *zap.Logger) *Manager {
	return NewManager(assetsFS, decode, log)
}

// SetOverrideDir makes files under dir win over the embedded ones.
func (m *Manager) SetOverrideDir(dir string) {
	m.overrideDir = dir
}

// Preload queues keys for the next Load.
func (m *Manager) Preload(keys ...string) {
	m.preload = append(m.preload, keys...)
}

// Load loads every queued key not already loaded, reporting progress in
// [0, 100]. Keys that fail are logged and skipped; the joined failures are
// returned.
func (m *Manager) Load(progress func(float64)) error {
	keys := m.preload
	m.preload = nil

	var pending []string
	for _, k := range keys {
		if !m.Has(k) {
			pending = append(pending, k)
		}
	}

	var errs []error
	for i, key := range pending {
		if err := m.LoadKey(key); err != nil {
			m.log.Error("failed to load asset", zap.String("key", key), zap.Error(err))
			errs = append(errs, err)
		}
		if progress != nil {
			progress(float64(i+1) / float64(len(pending)) * 100)
		}
	}
	if len(pending) == 0 && progress != nil {
		progress(100)
	}
	return errors.Join(errs...)
}

// LoadKey loads a single key immediately.
func (m *Manager) LoadKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrUnknownAsset)
	}
	b, err := m.read(key)
	if err != nil {
		return err
	}
	if !isImage(key) {
		m.data[key] = b
		return nil
	}
	if m.decode == nil {
		return fmt.Errorf("assets: load %s: no image decoder", key)
	}
	tex, err := m.decode(key, b)
	if err != nil {
		return fmt.Errorf("assets: load %s: %w", key, err)
	}
	m.textures[key] = tex
	return nil
}

func (m *Manager) read(key string) ([]byte, error) {
	clean := cleanAssetPath(key)
	if m.overrideDir != "" {
		if b, err := os.ReadFile(filepath.Join(m.overrideDir, filepath.FromSlash(clean))); err == nil {
			return b, nil
		}
	}
	if m.fsys == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, key)
	}
	b, err := fs.ReadFile(m.fsys, clean)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, key)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", key, err)
	}
	return b, nil
}

// Has reports whether key has been loaded.
func (m *Manager) Has(key string) bool {
	if _, ok := m.textures[key]; ok {
		return true
	}
	_, ok := m.data[key]
	return ok
}

// Texture returns the loaded texture for key.
func (m *Manager) Texture(key string) render.Texture {
	tex, ok := m.textures[key]
	if !ok {
		m.log.Error("tried to get unloaded texture", zap.String("key", key))
		return nil
	}
	return tex
}

// Textures returns the loaded textures for keys, skipping unloaded ones.
func (m *Manager) Textures(keys ...string) []render.Texture {
	out := make([]render.Texture, 0, len(keys))
	for _, k := range keys {
		if tex := m.Texture(k); tex != nil {
			out = append(out, tex)
		}
	}
	return out
}

// Data returns the raw bytes of a loaded non-image asset.
func (m *Manager) Data(key string) []byte {
	b, ok := m.data[key]
	if !ok {
		m.log.Error("tried to get unloaded data", zap.String("key", key))
		return nil
	}
	return b
}

// JSON decodes a loaded data asset into v.
func (m *Manager) JSON(key string, v any) error {
	b := m.Data(key)
	if b == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, key)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("assets: decode %s: %w", key, err)
	}
	return nil
}
