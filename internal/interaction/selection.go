package interaction

import "github.com/gogpu/sldview/internal/graph"

// Select applies a click on node h to mask and returns whether the merge
// and split buttons should be enabled.
//
// Clicking a branched node toggles every node of its branch together with
// every selected node, so a second click on the same branch clears it.
// Clicking an unbranched node deselects everything else and toggles it.
func Select(g *graph.Graph, mask graph.SelectionMask, h int) (merge, split bool) {
	b := g.BranchIndex[h]
	if b != graph.Unbranched {
		on := false
		for i := range mask {
			if g.BranchIndex[i] == b || mask.Selected(i) {
				if mask.Toggle(i) {
					on = true
				}
			}
		}
		return on, false
	}

	for i := range mask {
		if i != h && mask.Selected(i) {
			mask.Set(i, false)
		}
	}
	return false, mask.Toggle(h)
}
