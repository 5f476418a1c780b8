package rectpack

import "fmt"

// Packer holds the state of a single 2D rectangle packer: a canvas of
// fixed (but growable, via Enlarge) size, and the four EdgeMaps tracking
// every exposed edge of the rectangles placed on it so far.
type Packer struct {
	canvasW, canvasH int
	open             bool

	right, left edgeMap
	up, down    edgeMap

	usedArea       int
	boundW, boundH int
}

// NewPacker creates a packer for a canvas of w×h. open controls whether
// the top and right boundaries participate in contact scoring; see
// SetOpen.
func NewPacker(w, h int, open bool) (*Packer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rectpack: invalid canvas size %dx%d", w, h)
	}
	p := &Packer{open: open}
	p.ResetSize(w, h)
	return p, nil
}

// Reset clears every placement, keeping the current canvas size.
func (p *Packer) Reset() {
	p.ResetSize(p.canvasW, p.canvasH)
}

// ResetSize clears every placement and sets a new canvas size.
func (p *Packer) ResetSize(w, h int) {
	p.canvasW, p.canvasH = w, h
	p.usedArea, p.boundW, p.boundH = 0, 0, 0

	p.right.reset(w)
	p.left.reset(w)
	p.up.reset(h)
	p.down.reset(h)

	p.left.insert(0, segment{0, h}, &p.right)
	p.right.insert(w, segment{0, h}, &p.left)
	p.down.insert(0, segment{0, w}, &p.up)
	p.up.insert(h, segment{0, w}, &p.down)
}

// SetOpen toggles whether the canvas's top and right boundaries
// contribute to contact scoring. A packer intended to grow via Enlarge is
// usually kept open, since scoring a rectangle as flush against a
// boundary that's about to move would bias placement toward an edge that
// won't stay special.
func (p *Packer) SetOpen(open bool) {
	p.open = open
}

// Enlarge grows the canvas to at least w×h, preserving every existing
// placement. Shrinking is not supported; dimensions smaller than the
// current canvas are ignored.
func (p *Packer) Enlarge(w, h int) {
	newW, newH := max(w, p.canvasW), max(h, p.canvasH)
	if newW == p.canvasW && newH == p.canvasH {
		return
	}
	oldW, oldH := p.canvasW, p.canvasH
	growW, growH := newW > oldW, newH > oldH

	if growW {
		p.right.enlarge(newW)
		p.left.enlarge(newW)
	}
	if growH {
		p.up.enlarge(newH)
		p.down.enlarge(newH)
	}

	if growW {
		// The old right wall's remaining gaps become plain interior once
		// the wall moves; the portions it had cancelled against (rects
		// placed flush against it) become newly exposed right edges.
		gaps := append([]segment(nil), p.right.segmentsOn(oldW)...)
		exposed := complement(segment{0, oldH}, gaps)
		p.right.replaceLine(oldW, nil)
		for _, seg := range exposed {
			p.left.insert(oldW, seg, &p.right)
		}
		p.right.insert(newW, segment{0, oldH}, &p.left)
		p.down.insert(0, segment{oldW, newW - oldW}, &p.up)
		// The top wall doesn't move on a width-only grow, but its line
		// must still cover the newly added columns, mirroring the bottom
		// wall extension above.
		p.up.insert(oldH, segment{oldW, newW - oldW}, &p.down)
	}
	if growH {
		// growW above may have already extended the old top wall's line
		// across the full new width, so its full span is newW, not oldW.
		gaps := append([]segment(nil), p.up.segmentsOn(oldH)...)
		exposed := complement(segment{0, newW}, gaps)
		p.up.replaceLine(oldH, nil)
		for _, seg := range exposed {
			p.down.insert(oldH, seg, &p.up)
		}
		p.up.insert(newH, segment{0, newW}, &p.down)
		p.left.insert(0, segment{oldH, newH - oldH}, &p.right)
		// The right wall doesn't move on a height-only grow (and if growW
		// above did move it, it now lives at newW), but its line must
		// still cover the newly added rows, mirroring the left wall
		// extension above.
		p.right.insert(newW, segment{oldH, newH - oldH}, &p.left)
	}

	p.canvasW, p.canvasH = newW, newH
	Logger().Debug("rectpack: enlarged canvas", "w", newW, "h", newH)
}

// Pack finds a position for a w×h rectangle and places it there. ok is
// false if no position fits; w or h non-positive is treated the same way.
func (p *Packer) Pack(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	x, y, _, ok = p.bestFit(w, h)
	if !ok {
		Logger().Warn("rectpack: no position found", "w", w, "h", h)
		return 0, 0, false
	}
	p.place(x, y, w, h)
	return x, y, true
}

// PackRotate is like Pack but also tries the rectangle rotated 90°,
// keeping whichever orientation scores higher. Ties favor the
// non-rotated orientation.
func (p *Packer) PackRotate(w, h int) (x, y int, rotated, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false, false
	}
	if w == h {
		x, y, ok = p.Pack(w, h)
		return x, y, false, ok
	}
	x1, y1, s1, ok1 := p.bestFit(w, h)
	x2, y2, s2, ok2 := p.bestFit(h, w)

	switch {
	case ok1 && (!ok2 || s1 >= s2):
		p.place(x1, y1, w, h)
		return x1, y1, false, true
	case ok2:
		p.place(x2, y2, h, w)
		return x2, y2, true, true
	default:
		Logger().Warn("rectpack: no position found", "w", w, "h", h)
		return 0, 0, false, false
	}
}

// PackBatch packs every not-yet-packed rectangle in rects, reordering
// them internally (longest side first) for higher density, and returns
// the total count of packed rectangles including those already packed on
// entry. Rectangles that fail to pack are left untouched and not retried.
func (p *Packer) PackBatch(rects []*Rect, allowRotation bool) int {
	count := 0
	pending := make([]*Rect, 0, len(rects))
	for _, r := range rects {
		if r.Packed {
			count++
			continue
		}
		pending = append(pending, r)
	}
	batchSort(pending)

	for _, r := range pending {
		if allowRotation {
			x, y, rotated, ok := p.PackRotate(r.W, r.H)
			if !ok {
				continue
			}
			r.X, r.Y, r.Rotated, r.Packed = x, y, rotated, true
			count++
		} else {
			x, y, ok := p.Pack(r.W, r.H)
			if !ok {
				continue
			}
			r.X, r.Y, r.Packed = x, y, true
			count++
		}
	}
	return count
}

// Bounds returns the tight bounding box of every rectangle placed so far.
func (p *Packer) Bounds() (w, h int) {
	return p.boundW, p.boundH
}

// Area returns the cumulative area of placed rectangles and the current
// canvas capacity.
func (p *Packer) Area() (used, capacity int) {
	return p.usedArea, p.canvasW * p.canvasH
}

// place performs the placement mutation: inserting the rectangle's four
// sides into the four EdgeMaps with mask cancellation.
func (p *Packer) place(x, y, w, h int) {
	p.right.insert(x, segment{y, h}, &p.left)
	p.left.insert(x+w, segment{y, h}, &p.right)
	p.up.insert(y, segment{x, w}, &p.down)
	p.down.insert(y+h, segment{x, w}, &p.up)

	p.usedArea += w * h
	p.boundW = max(p.boundW, x+w)
	p.boundH = max(p.boundH, y+h)
	Logger().Debug("rectpack: placed", "x", x, "y", y, "w", w, "h", h)
}
