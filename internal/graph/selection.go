package graph

// SelectionMask holds one 0/1 entry per node. It is uploaded as a vertex
// attribute, hence float32.
type SelectionMask []float32

// NewSelectionMask returns an all-zero mask for n nodes.
func NewSelectionMask(n int) SelectionMask {
	return make(SelectionMask, n)
}

// Selected reports whether node i is selected.
func (m SelectionMask) Selected(i int) bool {
	return i >= 0 && i < len(m) && m[i] == 1
}

// Toggle flips node i and returns its new state.
func (m SelectionMask) Toggle(i int) bool {
	m[i] = 1 - m[i]
	return m[i] == 1
}

// Set selects or deselects node i.
func (m SelectionMask) Set(i int, on bool) {
	if on {
		m[i] = 1
	} else {
		m[i] = 0
	}
}

// Count returns the number of selected nodes.
func (m SelectionMask) Count() int {
	n := 0
	for _, v := range m {
		if v == 1 {
			n++
		}
	}
	return n
}

// Ints returns the mask as 0/1 integers for the wire.
func (m SelectionMask) Ints() []int {
	out := make([]int, len(m))
	for i, v := range m {
		if v == 1 {
			out[i] = 1
		}
	}
	return out
}
