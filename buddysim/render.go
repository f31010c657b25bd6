package buddysim

import (
	"fmt"
	"io"
	"os"

	"github.com/QuangTung97/buddyblock/allocator"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ShouldColor reports whether output written to w gets ANSI colors:
// only when wanted and w is a terminal
func ShouldColor(w io.Writer, wanted bool) bool {
	if !wanted {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type renderer struct {
	allocated *color.Color
	free      *color.Color
	split     *color.Color
}

func newRenderer(enabled bool) *renderer {
	r := &renderer{
		allocated: color.New(color.FgRed),
		free:      color.New(color.FgGreen),
		split:     color.New(color.Reset),
	}
	for _, c := range []*color.Color{r.allocated, r.free, r.split} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *renderer) colorOf(info allocator.NodeInfo) *color.Color {
	switch {
	case info.Split:
		return r.split
	case info.Allocated:
		return r.allocated
	default:
		return r.free
	}
}

func (r *renderer) writeStatus(w io.Writer, nodes []allocator.NodeInfo) {
	_, _ = fmt.Fprintln(w, allocator.StatusHeader)
	for _, info := range nodes {
		line := r.colorOf(info).Sprint(allocator.FormatNode(info))
		_, _ = fmt.Fprintln(w, allocator.Indent(info.Depth)+line)
	}
}

func (r *renderer) writeStats(w io.Writer, s allocator.Stats) {
	_, _ = fmt.Fprintf(w, "Used: %d/%d (%.2f%%), blocks: %d, nodes: %d, leaves: %d\n",
		s.Used, s.Capacity, s.Utilization.Percent(), s.NumBlocks, s.NumNodes, s.NumLeaves)
}
