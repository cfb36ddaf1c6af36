package schedule

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ResourceLocker serializes the occupancy-check-then-persist window per
// resource (trainer, location or training id). The occupancy check and
// the following write are not a single atomic operation at the storage
// layer, so without this two concurrent creates for the same trainer and
// an overlapping window could both pass the check and both persist.
type ResourceLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewResourceLocker() *ResourceLocker {
	return &ResourceLocker{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex of every given resource and returns the matching
// unlock. Ids are deduplicated and acquired in byte order so two callers
// locking overlapping resource sets cannot deadlock.
func (l *ResourceLocker) Lock(ids ...uuid.UUID) (unlock func()) {
	acquired := make([]*sync.Mutex, 0, len(ids))
	for _, id := range dedupSorted(ids) {
		m := l.lockFor(id)
		m.Lock()
		acquired = append(acquired, m)
	}
	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}

func (l *ResourceLocker) lockFor(id uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

func dedupSorted(ids []uuid.UUID) []uuid.UUID {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	out := sorted[:0]
	for i, id := range sorted {
		if i == 0 || id != sorted[i-1] {
			out = append(out, id)
		}
	}
	return out
}
