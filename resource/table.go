package resource

import "sync"

// Table is a handle table shared by every resource kind of one library.
// Each entry carries the type ID it was inserted with, and lookups and
// releases through the wrong type ID fail as if the handle were stale.
type Table struct {
	slots     *slots
	mu        sync.RWMutex
	observers []Observer
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{slots: newSlots()}
}

// Insert stores value under typeID. It returns 0 once the table is closed or
// its slot space is exhausted.
func (t *Table) Insert(typeID uint32, value any) Handle {
	h, err := t.slots.create(typeID, value)
	if err != nil {
		return 0
	}
	t.notify(Event{Type: EventCreated, Handle: h, TypeID: typeID, Value: value})
	return h
}

// Lookup returns the value behind h if it is live and of type typeID.
func (t *Table) Lookup(h Handle, typeID uint32) (any, bool) {
	v, id, ok := t.slots.get(h)
	if !ok || id != typeID {
		return nil, false
	}
	return v, true
}

// Release removes h if it is live and of type typeID, runs its Dropper and
// returns the value. Any other handle is reported as EventStaleDrop and
// left untouched.
func (t *Table) Release(h Handle, typeID uint32) (any, bool) {
	v, ok := t.slots.drop(h, typeID)
	if !ok {
		t.notify(Event{Type: EventStaleDrop, Handle: h, TypeID: typeID})
		return nil, false
	}
	if d, ok := v.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventDropped, Handle: h, TypeID: typeID, Value: v})
	return v, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live entries of every type.
func (t *Table) Len() int {
	return t.slots.len()
}

// Close drops every live entry and refuses further inserts. Entries dropped
// by Close produce no events.
func (t *Table) Close() error {
	t.slots.close()
	return nil
}

func (t *Table) notify(e Event) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}

// Typed is a view of a Table restricted to one type ID.
type Typed[T any] struct {
	table  *Table
	typeID uint32
}

// NewTyped returns a view of table restricted to typeID.
func NewTyped[T any](table *Table, typeID uint32) *Typed[T] {
	return &Typed[T]{table: table, typeID: typeID}
}

// Insert adds a value and returns its handle.
func (v *Typed[T]) Insert(value T) Handle {
	return v.table.Insert(v.typeID, value)
}

// Get resolves handle to its value.
func (v *Typed[T]) Get(handle Handle) (T, bool) {
	raw, ok := v.table.Lookup(handle, v.typeID)
	val, _ := raw.(T)
	return val, ok
}

// Remove releases handle and returns its value.
func (v *Typed[T]) Remove(handle Handle) (T, bool) {
	raw, ok := v.table.Release(handle, v.typeID)
	val, _ := raw.(T)
	return val, ok
}

// Len returns the number of live entries of this type.
func (v *Typed[T]) Len() int {
	n := 0
	v.Each(func(Handle, T) bool {
		n++
		return true
	})
	return n
}

// Each calls fn for every live entry of this type until fn returns false.
func (v *Typed[T]) Each(fn func(Handle, T) bool) {
	v.table.slots.each(func(h Handle, typeID uint32, value any) bool {
		if typeID != v.typeID {
			return true
		}
		val, ok := value.(T)
		if !ok {
			return true
		}
		return fn(h, val)
	})
}
