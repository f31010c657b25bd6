package allocator

import "sync"

// Locked serializes every operation of an Allocator behind one mutex.
// The merge pass walks the whole tree so finer grained locking is not possible.
type Locked struct {
	mut   sync.Mutex
	alloc *Allocator
}

// NewLocked ...
func NewLocked(a *Allocator) *Locked {
	return &Locked{alloc: a}
}

// Allocate ...
func (l *Locked) Allocate(size int) (Block, bool, error) {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.alloc.Allocate(size)
}

// Free ...
func (l *Locked) Free(h Handle) bool {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.alloc.Free(h)
}

// Lookup ...
func (l *Locked) Lookup(h Handle) (Block, bool) {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.alloc.Lookup(h)
}

// Blocks ...
func (l *Locked) Blocks() []Block {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.alloc.Blocks()
}

// Status ...
func (l *Locked) Status() string {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.alloc.Status()
}

// Snapshot ...
func (l *Locked) Snapshot() []NodeInfo {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.alloc.Snapshot()
}

// Stats ...
func (l *Locked) Stats() Stats {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.alloc.Stats()
}
