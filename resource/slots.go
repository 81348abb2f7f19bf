package resource

import (
	"errors"
	"sync"
)

var (
	ErrClosed = errors.New("resource table closed")
	ErrFull   = errors.New("resource table slot space exhausted")
)

// slots is the storage behind a Table: a slice of generation-tagged entries
// and a free list of reusable indexes.
type slots struct {
	entries  []entry
	freeList []int
	mu       sync.RWMutex
	closed   bool
	live     int
}

type entry struct {
	value  any
	typeID uint32
	gen    uint8
	valid  bool
}

func newSlots() *slots {
	return &slots{
		entries:  make([]entry, 0, 64),
		freeList: make([]int, 0, 16),
	}
}

func (s *slots) create(typeID uint32, value any) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	var slot int
	if n := len(s.freeList); n > 0 {
		slot = s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
	} else {
		if len(s.entries) >= maxSlots {
			return 0, ErrFull
		}
		s.entries = append(s.entries, entry{})
		slot = len(s.entries) - 1
	}
	e := &s.entries[slot]
	e.typeID, e.value, e.valid = typeID, value, true
	s.live++
	return makeHandle(slot, e.gen), nil
}

// lookup returns the live entry for h. Caller holds mu.
func (s *slots) lookup(h Handle) *entry {
	slot := h.slot()
	if slot < 0 || slot >= len(s.entries) {
		return nil
	}
	e := &s.entries[slot]
	if !e.valid || e.gen != h.generation() {
		return nil
	}
	return e
}

func (s *slots) get(h Handle) (value any, typeID uint32, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.lookup(h)
	if e == nil {
		return nil, 0, false
	}
	return e.value, e.typeID, true
}

// drop frees h if it is live and of type typeID, advancing the slot
// generation so h never resolves again.
func (s *slots) drop(h Handle, typeID uint32) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(h)
	if e == nil || e.typeID != typeID {
		return nil, false
	}
	value := e.value
	e.valid = false
	e.value = nil
	e.gen++
	s.freeList = append(s.freeList, h.slot())
	s.live--
	return value, true
}

// close invalidates every entry and runs the Droppers among them.
func (s *slots) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true

	var droppers []Dropper
	for i := range s.entries {
		if d, ok := s.entries[i].value.(Dropper); ok && s.entries[i].valid {
			droppers = append(droppers, d)
		}
	}
	s.entries, s.freeList, s.live = nil, nil, 0
	s.mu.Unlock()

	// Droppers may release other resources, so they run unlocked.
	for _, d := range droppers {
		d.Drop()
	}
}

func (s *slots) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}

func (s *slots) each(fn func(Handle, uint32, any) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, e := range s.entries {
		if e.valid && !fn(makeHandle(i, e.gen), e.typeID, e.value) {
			return
		}
	}
}
