package service

import "sync"

const DedupCapacity = 512

// Deduper remembers the most recently dispatched update IDs so platform
// re-deliveries are acknowledged without running a handler twice.
type Deduper struct {
	mutex sync.Mutex
	seen  map[int64]struct{}
	ring  []int64
	next  int
}

func NewDeduper(capacity int) *Deduper {
	if capacity <= 0 {
		capacity = DedupCapacity
	}

	return &Deduper{
		seen: make(map[int64]struct{}, capacity),
		ring: make([]int64, capacity),
	}
}

// FirstSeen marks the ID as processed and reports whether this was its
// first appearance. Mark and test are a single step under the lock, so
// two concurrent deliveries of one update cannot both pass.
func (d *Deduper) FirstSeen(id int64) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, ok := d.seen[id]; ok {
		return false
	}

	if evicted := d.ring[d.next]; evicted != 0 {
		delete(d.seen, evicted)
	}
	d.ring[d.next] = id
	d.next = (d.next + 1) % len(d.ring)

	d.seen[id] = struct{}{}

	return true
}

func (d *Deduper) Len() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return len(d.seen)
}
