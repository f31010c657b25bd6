package allocator

// Rational is Nominator / Denominator
type Rational struct {
	Nominator   uint64
	Denominator uint64
}

// Percent returns the ratio scaled to 0..100, 0 when the denominator is 0
func (r Rational) Percent() float64 {
	if r.Denominator == 0 {
		return 0
	}
	return float64(r.Nominator) * 100 / float64(r.Denominator)
}

// Stats ...
type Stats struct {
	Capacity  int
	Used      int
	Free      int
	NumBlocks int
	NumNodes  int
	NumLeaves int

	// Utilization is Used / Capacity
	Utilization Rational
}

// Stats ...
func (a *Allocator) Stats() Stats {
	s := Stats{
		Capacity:  a.capacity,
		NumBlocks: len(a.blocks),
	}

	walk(a.tree.root, 0, func(n *node, _ int) {
		s.NumNodes++
		if !n.isLeaf() {
			return
		}
		s.NumLeaves++
		if n.allocated {
			s.Used += n.size
		}
	})

	s.Free = s.Capacity - s.Used
	s.Utilization = Rational{
		Nominator:   uint64(s.Used),
		Denominator: uint64(s.Capacity),
	}
	return s
}
