package person

import "sync"

// Store exposes the person collection to HTTP handlers.
type Store interface {
	List(skip, take int) []Person
	FindByID(id int) (Person, bool)
	Put(id int, p Person) (Person, bool)
	Replace(id int, p Person) (Person, bool)
	Delete(id int) (Person, bool)
	Upsert(p Person) (Person, bool)
	Len() int
}

// MemoryStore implements Store with a mutex-guarded slice. Records keep
// insertion order and ids stay unique; uniqueness is enforced here rather
// than left to callers.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Person
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied records.
func NewMemoryStore(items []Person) *MemoryStore {
	return &MemoryStore{items: append([]Person(nil), items...)}
}

// List returns at most take records starting at offset skip, preserving
// store order. A negative skip counts as zero; a skip past the end yields
// an empty slice.
func (s *MemoryStore) List(skip, take int) []Person {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if skip < 0 {
		skip = 0
	}
	if skip >= len(s.items) || take <= 0 {
		return []Person{}
	}

	end := skip + take
	if end > len(s.items) {
		end = len(s.items)
	}

	out := make([]Person, end-skip)
	copy(out, s.items[skip:end])
	return out
}

// FindByID looks up a record by identifier.
func (s *MemoryStore) FindByID(id int) (Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return Person{}, false
}

// Put stores p under the given id, the id winning over whatever the record
// carried. An existing record with that id is replaced in place; otherwise
// the record is appended. Put never fails; the second result reports
// whether a new record was created.
func (s *MemoryStore) Put(id int, p Person) (Person, bool) {
	p.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.items[i] = p
		return p, false
	}
	s.items = append(s.items, p)
	return p, true
}

// Replace swaps the record with the given id for p, keeping its position.
// The old field values are discarded, not merged. Reports false and leaves
// the store untouched when the id is absent.
func (s *MemoryStore) Replace(id int, p Person) (Person, bool) {
	p.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Person{}, false
	}
	s.items[i] = p
	return p, true
}

// Delete removes the record with the given id and returns it. Reports false
// and leaves the store untouched when the id is absent.
func (s *MemoryStore) Delete(id int) (Person, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Person{}, false
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return removed, true
}

// Upsert updates the record matching p.ID in place, or, when p carries no
// id known to the store, assigns the next id after the current maximum and
// appends. The stored record is returned either way; the second result
// reports whether a new record was created.
func (s *MemoryStore) Upsert(p Person) (Person, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID > 0 {
		if i := s.indexOf(p.ID); i >= 0 {
			s.items[i] = p
			return p, false
		}
	}

	maxID := 0
	for _, item := range s.items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	p.ID = maxID + 1
	s.items = append(s.items, p)
	return p, true
}

// Len reports the current record count.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// indexOf returns the position of the record with the given id, or -1.
// Callers must hold the lock.
func (s *MemoryStore) indexOf(id int) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
