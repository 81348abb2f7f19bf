package resource

// Handle is an opaque reference to a native resource in a Table.
// Handle 0 is reserved and always invalid.
//
// The low 24 bits select a slot, the high 8 bits carry the slot generation.
// A slot's generation advances every time it is freed, so a handle kept past
// its release stops resolving even after the slot is reused.
type Handle uint32

const (
	indexBits = 24
	indexMask = 1<<indexBits - 1
	maxSlots  = indexMask
)

func makeHandle(slot int, gen uint8) Handle {
	return Handle(uint32(gen)<<indexBits | uint32(slot+1))
}

// slot returns the zero-based slot index, or -1 for the zero handle.
func (h Handle) slot() int {
	return int(uint32(h)&indexMask) - 1
}

func (h Handle) generation() uint8 {
	return uint8(uint32(h) >> indexBits)
}

// EventType classifies a lifecycle event.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	// EventStaleDrop reports a release of a handle that does not resolve
	// for the requested type: a double release, a release through the
	// wrong kind, or a handle that never existed.
	EventStaleDrop
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventStaleDrop:
		return "stale_drop"
	default:
		return "unknown"
	}
}

// Event describes one lifecycle change. Value is nil for stale drops.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives lifecycle events synchronously, in table order.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is implemented by values that own native storage. Drop runs once,
// when the value leaves the table.
type Dropper interface {
	Drop()
}
