package locks

import (
	"sync"

	"staybook/internal/domain/property"
)

// PropertyLocks hands out one mutex per property so that a check-then-act
// sequence (availability check followed by a write) cannot interleave with
// another writer on the same property. Without it two concurrent creates for
// overlapping ranges could both observe "free" and both commit.
type PropertyLocks struct {
	mu    sync.Mutex
	locks map[property.PropertyID]*sync.Mutex
}

func NewPropertyLocks() *PropertyLocks {
	return &PropertyLocks{locks: make(map[property.PropertyID]*sync.Mutex)}
}

// Lock acquires the exclusive lock for the property and returns the release
// function. Lock entries are never removed; the registry grows with the
// number of distinct properties, which is bounded and small.
func (l *PropertyLocks) Lock(id property.PropertyID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
