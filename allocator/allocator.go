package allocator

import (
	"io"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Handle identifies one allocation, never reused by the same Allocator
type Handle int

// Block ...
type Block struct {
	Handle Handle
	Size   int
	Offset int
}

// End returns the first offset past the block
func (b Block) End() int {
	return b.Offset + b.Size
}

// Config ...
type Config struct {
	// Capacity is the size of the simulated address space, must be a power of two
	Capacity int

	// Logger receives debug events for split, merge, allocate and free.
	// Defaults to a logger that discards everything.
	Logger logrus.FieldLogger
}

// Allocator ...
type Allocator struct {
	capacity int
	tree     buddyTree
	logger   logrus.FieldLogger

	blocks     map[Handle]Block
	lastHandle Handle
}

func validateConfig(conf Config) error {
	if !IsPowerOfTwo(conf.Capacity) {
		return errors.Wrapf(ErrInvalidCapacity, "capacity %d", conf.Capacity)
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// New ...
func New(conf Config) (*Allocator, error) {
	if err := validateConfig(conf); err != nil {
		return nil, err
	}

	logger := conf.Logger
	if logger == nil {
		logger = discardLogger()
	}

	return &Allocator{
		capacity: conf.Capacity,
		tree: buddyTree{
			root:   newNode(conf.Capacity, 0),
			logger: logger,
		},
		logger: logger,

		blocks:     map[Handle]Block{},
		lastHandle: 0,
	}, nil
}

// NewWithCapacity ...
func NewWithCapacity(capacity int) (*Allocator, error) {
	return New(Config{Capacity: capacity})
}

// Capacity ...
func (a *Allocator) Capacity() int {
	return a.capacity
}

// Allocate reserves the lowest free block able to hold size bytes.
// ok is false when no such block exists; err is only set for a non-positive size.
func (a *Allocator) Allocate(size int) (block Block, ok bool, err error) {
	if size <= 0 {
		return Block{}, false, errors.Wrapf(ErrInvalidSize, "size %d", size)
	}

	if size > a.capacity {
		a.logger.WithField("size", size).Debug("allocation larger than capacity")
		return Block{}, false, nil
	}

	actualSize := NextPowerOfTwo(size)
	n := a.tree.allocate(a.tree.root, actualSize)
	if n == nil {
		a.logger.WithField("size", actualSize).Debug("no free block")
		return Block{}, false, nil
	}

	a.lastHandle++
	n.handle = a.lastHandle

	block = Block{
		Handle: a.lastHandle,
		Size:   actualSize,
		Offset: n.offset,
	}
	a.blocks[block.Handle] = block

	a.logger.WithFields(logrus.Fields{
		"handle": block.Handle,
		"offset": block.Offset,
		"size":   block.Size,
	}).Debug("allocate block")

	return block, true, nil
}

// Free releases the block of handle, returns false for an unknown or already freed handle.
// A record without a matching allocated leaf is kept and reported as false.
func (a *Allocator) Free(h Handle) bool {
	block, existed := a.blocks[h]
	if !existed {
		a.logger.WithField("handle", h).Debug("free unknown handle")
		return false
	}

	if !a.tree.release(block.Offset, block.Size) {
		a.logger.WithFields(logrus.Fields{
			"handle": h,
			"offset": block.Offset,
			"size":   block.Size,
		}).Error("no allocated block in tree for handle")
		return false
	}
	delete(a.blocks, h)

	a.logger.WithFields(logrus.Fields{
		"handle": h,
		"offset": block.Offset,
		"size":   block.Size,
	}).Debug("free block")

	return true
}

// Lookup ...
func (a *Allocator) Lookup(h Handle) (Block, bool) {
	block, ok := a.blocks[h]
	return block, ok
}

// Blocks returns live allocations ordered by handle
func (a *Allocator) Blocks() []Block {
	result := make([]Block, 0, len(a.blocks))
	for _, b := range a.blocks {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Handle < result[j].Handle
	})
	return result
}
