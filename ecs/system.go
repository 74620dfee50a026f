package ecs

// System is a capability attached to an entity. Kind names the concrete
// implementation and is what gets persisted; Slot is the key an entity stores
// it under, and an entity holds at most one system per slot.
type System interface {
	Kind() string
	Slot() string

	Start(e *Entity)
	PreUpdate(delta float64)
	Update(delta float64)
	PostUpdate(delta float64)
	End()

	Disabled() bool
	SetDisabled(disabled bool)

	Save() (SystemData, error)
	Load(data SystemData) error
}

// Base provides no-op phase hooks plus the state every system shares. Embed it
// and override what you need.
type Base struct {
	entity   *Entity
	started  bool
	disabled bool
}

// Start records the owning entity. Overrides must call it.
func (b *Base) Start(e *Entity) {
	b.entity = e
	b.started = true
}

func (b *Base) PreUpdate(float64)  {}
func (b *Base) Update(float64)     {}
func (b *Base) PostUpdate(float64) {}
func (b *Base) End()               {}

func (b *Base) Disabled() bool {
	return b.disabled
}

func (b *Base) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Entity returns the owning entity, or nil before Start. The system does not
// own it.
func (b *Base) Entity() *Entity {
	return b.entity
}

// Started reports whether Start has run.
func (b *Base) Started() bool {
	return b.started
}

// SaveBase encodes the shared fields plus the variant-specific fields.
func (b *Base) SaveBase(kind string, fields any) (SystemData, error) {
	return EncodeSystemData(kind, b.disabled, fields)
}

// LoadBase restores the shared fields and decodes the variant-specific fields
// into fields, which may be nil.
func (b *Base) LoadBase(data SystemData, fields any) error {
	b.disabled = data.Disabled
	if fields == nil {
		return nil
	}
	return data.Decode(fields)
}
