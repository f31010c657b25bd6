package allocator

import (
	"strconv"
	"strings"
)

// NodeInfo is one node of the block tree as seen by Snapshot
type NodeInfo struct {
	Depth     int
	Offset    int
	Size      int
	Allocated bool
	Split     bool

	// Handle is zero unless Allocated
	Handle Handle
}

// Snapshot returns the tree in pre-order: node, left subtree, right subtree
func (a *Allocator) Snapshot() []NodeInfo {
	var result []NodeInfo
	walk(a.tree.root, 0, func(n *node, depth int) {
		result = append(result, NodeInfo{
			Depth:     depth,
			Offset:    n.offset,
			Size:      n.size,
			Allocated: n.allocated,
			Split:     !n.isLeaf(),
			Handle:    n.handle,
		})
	})
	return result
}

// StatusHeader is the first line of Status
const StatusHeader = "Memory Status:"

// FormatNode renders a single status line without indentation or newline
func FormatNode(info NodeInfo) string {
	var b strings.Builder
	b.WriteString("Block[")
	if info.Allocated {
		b.WriteString("id=")
		b.WriteString(strconv.Itoa(int(info.Handle)))
		b.WriteString(", ")
	}
	b.WriteString("offset=")
	b.WriteString(strconv.Itoa(info.Offset))
	b.WriteString(", size=")
	b.WriteString(strconv.Itoa(info.Size))
	b.WriteString(", allocated=")
	b.WriteString(strconv.FormatBool(info.Allocated))
	b.WriteString("]")
	return b.String()
}

// Indent returns the indentation used by Status for a node at depth
func Indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// Status ...
func (a *Allocator) Status() string {
	var b strings.Builder
	b.WriteString(StatusHeader)
	b.WriteString("\n")
	for _, info := range a.Snapshot() {
		b.WriteString(Indent(info.Depth))
		b.WriteString(FormatNode(info))
		b.WriteString("\n")
	}
	return b.String()
}
