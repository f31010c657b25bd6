package allocator

import (
	"math/bits"

	"github.com/sirupsen/logrus"
)

// node covers the region [offset, offset+size)
// either both left and right are nil (leaf) or both are set (split)
type node struct {
	size      int
	offset    int
	allocated bool
	handle    Handle

	left  *node
	right *node
}

func newNode(size int, offset int) *node {
	return &node{
		size:   size,
		offset: offset,
	}
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// IsPowerOfTwo ...
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n, 1 for n <= 1
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

type buddyTree struct {
	root   *node
	logger logrus.FieldLogger
}

func (t *buddyTree) split(n *node) {
	if !n.isLeaf() {
		return
	}
	half := n.size >> 1
	n.left = newNode(half, n.offset)
	n.right = newNode(half, n.offset+half)

	t.logger.WithFields(logrus.Fields{
		"offset": n.offset,
		"size":   n.size,
	}).Debug("split block")
}

// allocate finds the lowest free block of exactly size bytes, splitting on the way down
func (t *buddyTree) allocate(n *node, size int) *node {
	if n == nil || n.allocated || n.size < size {
		return nil
	}

	if n.size == size {
		if !n.isLeaf() {
			return nil
		}
		n.allocated = true
		return n
	}

	t.split(n)

	if result := t.allocate(n.left, size); result != nil {
		return result
	}
	return t.allocate(n.right, size)
}

func (t *buddyTree) find(n *node, offset int, size int) *node {
	for n != nil {
		if n.offset == offset && n.size == size {
			return n
		}
		if n.size <= size || n.isLeaf() {
			return nil
		}
		if offset < n.right.offset {
			n = n.left
		} else {
			n = n.right
		}
	}
	return nil
}

// release clears the leaf at (offset, size) then runs the merge pass from the root
func (t *buddyTree) release(offset int, size int) bool {
	n := t.find(t.root, offset, size)
	if n == nil || !n.allocated {
		return false
	}
	n.allocated = false
	n.handle = 0

	t.merge(t.root)
	return true
}

// merge reports whether n is fully free, collapsing split nodes whose children are both free
func (t *buddyTree) merge(n *node) bool {
	if n.isLeaf() {
		return !n.allocated
	}

	leftFree := t.merge(n.left)
	rightFree := t.merge(n.right)
	if !leftFree || !rightFree {
		return false
	}

	n.left = nil
	n.right = nil

	t.logger.WithFields(logrus.Fields{
		"offset": n.offset,
		"size":   n.size,
	}).Debug("merge buddies")
	return true
}

// walk visits nodes in pre-order: node, left subtree, right subtree
func walk(n *node, depth int, fn func(n *node, depth int)) {
	if n == nil {
		return
	}
	fn(n, depth)
	walk(n.left, depth+1, fn)
	walk(n.right, depth+1, fn)
}
