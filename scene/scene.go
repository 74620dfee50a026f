// Package scene switches between the game's top-level states.
package scene

import "go.uber.org/zap"

// Scene is a top-level game state. The loop calls its phase hooks before the
// entities' each tick.
type Scene interface {
	Name() string
	Start()
	PreUpdate(delta float64)
	Update(delta float64)
	PostUpdate(delta float64)
	Stop()
}

// Base gives a named scene with no-op hooks.
type Base struct {
	SceneName string
}

func (b *Base) Name() string       { return b.SceneName }
func (b *Base) Start()             {}
func (b *Base) PreUpdate(float64)  {}
func (b *Base) Update(float64)     {}
func (b *Base) PostUpdate(float64) {}
func (b *Base) Stop()              {}

// Manager holds the active scene.
type Manager struct {
	current Scene
	log     *zap.Logger
}

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{log: log}
}

// LoadScene stops the active scene, if any, then starts s.
func (m *Manager) LoadScene(s Scene) {
	if s == nil {
		m.log.Warn("nil scene ignored")
		return
	}
	if m.current != nil {
		m.log.Info("stopping scene", zap.String("scene", m.current.Name()))
		m.current.Stop()
	}

	m.current = s

	m.log.Info("starting scene", zap.String("scene", s.Name()))
	s.Start()
}

// Current returns the active scene, or nil.
func (m *Manager) Current() Scene {
	return m.current
}

func (m *Manager) PreUpdate(delta float64) {
	if m.current != nil {
		m.current.PreUpdate(delta)
	}
}

func (m *Manager) Update(delta float64) {
	if m.current != nil {
		m.current.Update(delta)
	}
}

func (m *Manager) PostUpdate(delta float64) {
	if m.current != nil {
		m.current.PostUpdate(delta)
	}
}
