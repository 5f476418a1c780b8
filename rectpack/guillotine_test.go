package rectpack

import "math/rand"

// guillotineNode is a recursive binary split of a w×h region, alternating
// the split axis. Traversing its leaves yields a partition of the region
// into non-overlapping rectangles with no gaps, i.e. a set that a perfect
// packer could always pack in full.
type guillotineNode struct {
	w, h     int
	vertical bool
	children []guillotineNode
}

func (n *guillotineNode) atomic() bool {
	return (n.vertical && n.w == 1) || (!n.vertical && n.h == 1)
}

func (n *guillotineNode) split(rng *rand.Rand) bool {
	if n.atomic() {
		return false
	}
	if len(n.children) > 0 {
		first := rng.Intn(2)
		second := first ^ 1
		return n.children[first].split(rng) || n.children[second].split(rng)
	}
	if n.vertical {
		at := 1 + rng.Intn(n.w-1)
		n.children = []guillotineNode{
			{w: at, h: n.h, vertical: false},
			{w: n.w - at, h: n.h, vertical: false},
		}
	} else {
		at := 1 + rng.Intn(n.h-1)
		n.children = []guillotineNode{
			{w: n.w, h: at, vertical: true},
			{w: n.w, h: n.h - at, vertical: true},
		}
	}
	return true
}

func (n *guillotineNode) traverse(x, y int, out *[]*Rect) {
	if len(n.children) == 0 {
		*out = append(*out, &Rect{W: n.w, H: n.h, X: x, Y: y})
		return
	}
	for i := range n.children {
		child := &n.children[i]
		child.traverse(x, y, out)
		if n.vertical {
			x += child.w
		} else {
			y += child.h
		}
	}
}

// generateGuillotineSet partitions a w×h region into a set of rectangles
// via splits random binary splits, returning them with their expected
// guillotine positions already filled in (unpacked, for the caller to
// feed through PackBatch in some other order).
func generateGuillotineSet(rng *rand.Rand, w, h int, splits int) []*Rect {
	root := guillotineNode{w: w, h: h, vertical: rng.Intn(2) == 0}
	for i := 0; i < splits; i++ {
		root.split(rng)
	}
	var rects []*Rect
	root.traverse(0, 0, &rects)
	return rects
}
