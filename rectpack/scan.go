package rectpack

import "slices"

// score returns the total contact-perimeter overlap a candidate placement
// at (x, y, w, h) would gain against already-occupied or canvas-boundary
// edges. Open mode excludes the contribution of whichever side currently
// sits flush against the canvas's top or right boundary, since that
// boundary may move on the next Enlarge.
func (p *Packer) score(x, y, w, h int) int {
	total := overlapSegments(p.left.segmentsOn(x), y, h)
	if !(p.open && x+w == p.canvasW) {
		total += overlapSegments(p.right.segmentsOn(x+w), y, h)
	}
	total += overlapSegments(p.down.segmentsOn(y), x, w)
	if !(p.open && y+h == p.canvasH) {
		total += overlapSegments(p.up.segmentsOn(y+h), x, w)
	}
	return total
}

// blocked reports whether any existing edge lies strictly inside the
// candidate rectangle's interior, which would mean it overlaps something
// already placed.
func (p *Packer) blocked(x, y, w, h int) bool {
	for lx := x + 1; lx < x+w; lx++ {
		if anyOverlap(p.right.segmentsOn(lx), y, h) || anyOverlap(p.left.segmentsOn(lx), y, h) {
			return true
		}
	}
	for ly := y + 1; ly < y+h; ly++ {
		if anyOverlap(p.up.segmentsOn(ly), x, w) || anyOverlap(p.down.segmentsOn(ly), x, w) {
			return true
		}
	}
	return false
}

// bestFit scans for the highest-scoring valid placement of a w×h
// rectangle. It runs two passes: a vertical scan that only evaluates
// y-positions pinned to a left/right edge breakpoint on each x-column, and
// a horizontal scan that only evaluates x-positions pinned to a top/bottom
// edge breakpoint on each y-row. Any optimal placement is corner-pinned
// against some existing edge, so restricting candidates to breakpoints
// loses nothing while keeping per-candidate cost proportional to the
// canvas perimeter rather than its area.
func (p *Packer) bestFit(w, h int) (x, y, bestScore int, ok bool) {
	maxX := p.canvasW - w
	maxY := p.canvasH - h
	if maxX < 0 || maxY < 0 {
		return 0, 0, 0, false
	}
	bestScore = 0

	consider := func(cx, cy int) {
		if cx < 0 || cy < 0 || cx > maxX || cy > maxY {
			return
		}
		if p.blocked(cx, cy, w, h) {
			return
		}
		s := p.score(cx, cy, w, h)
		if s <= 0 {
			return
		}
		if !ok || s > bestScore {
			bestScore, x, y, ok = s, cx, cy, true
		}
	}

	for cx := 0; cx <= maxX; cx++ {
		for _, by := range p.verticalBreakpoints(cx, w, h, maxY) {
			consider(cx, by)
		}
	}
	for cy := 0; cy <= maxY; cy++ {
		for _, bx := range p.horizontalBreakpoints(cy, w, h, maxX) {
			consider(bx, cy)
		}
	}
	return x, y, bestScore, ok
}

// verticalBreakpoints returns the candidate y-positions worth evaluating
// for column cx. Contact against a segment, as a function of the
// candidate's y with window height h, is piecewise-linear with kinks at
// the four points where the window's top or bottom edge crosses one of
// the segment's own two endpoints; every one of those four is a
// candidate for the maximum, not just the segment's start.
func (p *Packer) verticalBreakpoints(cx, w, h, maxY int) []int {
	pts := []int{0, maxY}
	for _, s := range p.left.segmentsOn(cx) {
		pts = append(pts, s.Pos, s.Pos-h, s.end(), s.end()-h)
	}
	for _, s := range p.right.segmentsOn(cx + w) {
		pts = append(pts, s.Pos, s.Pos-h, s.end(), s.end()-h)
	}
	return clampDedupSort(pts, 0, maxY)
}

func (p *Packer) horizontalBreakpoints(cy, w, h, maxX int) []int {
	pts := []int{0, maxX}
	for _, s := range p.down.segmentsOn(cy) {
		pts = append(pts, s.Pos, s.Pos-w, s.end(), s.end()-w)
	}
	for _, s := range p.up.segmentsOn(cy + h) {
		pts = append(pts, s.Pos, s.Pos-w, s.end(), s.end()-w)
	}
	return clampDedupSort(pts, 0, maxX)
}

func clampDedupSort(pts []int, lo, hi int) []int {
	out := pts[:0]
	for _, v := range pts {
		out = append(out, min(max(v, lo), hi))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
