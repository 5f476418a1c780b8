package rectpack

import "fmt"

// Rect is both the input (W, H) and, once packed, the output (X, Y,
// Packed, Rotated) of a single packing request.
type Rect struct {
	W, H int

	X, Y    int
	Packed  bool
	Rotated bool
}

// NewRect creates an unpacked rectangle of the given size.
func NewRect(w, h int) *Rect {
	return &Rect{W: w, H: h}
}

// String returns a human-readable representation, mainly for test failures.
func (r *Rect) String() string {
	if !r.Packed {
		return fmt.Sprintf("Rect{%dx%d unpacked}", r.W, r.H)
	}
	return fmt.Sprintf("Rect{%dx%d at (%d,%d) rotated=%v}", r.W, r.H, r.X, r.Y, r.Rotated)
}

// placedW and placedH return the footprint actually occupied on the
// canvas, which is swapped from W, H when the rectangle was rotated.
func (r *Rect) placedW() int {
	if r.Rotated {
		return r.H
	}
	return r.W
}

func (r *Rect) placedH() int {
	if r.Rotated {
		return r.W
	}
	return r.H
}

// Right and Bottom return the exclusive edges of the placed footprint.
func (r *Rect) Right() int  { return r.X + r.placedW() }
func (r *Rect) Bottom() int { return r.Y + r.placedH() }

// Intersects reports whether two placed rectangles overlap. Used by tests,
// not by the packer itself (the EdgeMap substrate already guarantees
// non-overlap by construction).
func (r *Rect) Intersects(o *Rect) bool {
	if !r.Packed || !o.Packed {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

func maxSide(w, h int) int {
	if w > h {
		return w
	}
	return h
}
