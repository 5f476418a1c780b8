package rectpack

// edgeMap stores, for each integer line along its normal axis, a sorted
// list of disjoint segments along the tangent axis. Lines are addressed
// 0..n inclusive; edges and lines form a flat-array, prefix-sum
// representation: segments of line L live in edges[lines[L]:lines[L+1]].
type edgeMap struct {
	edges []segment
	lines []int
}

func (e *edgeMap) reset(n int) {
	e.edges = e.edges[:0]
	if cap(e.lines) >= n+2 {
		e.lines = e.lines[:n+2]
		for i := range e.lines {
			e.lines[i] = 0
		}
	} else {
		e.lines = make([]int, n+2)
	}
}

// enlarge extends the line range to n, repeating the final prefix-sum
// entry for every newly added line (they start out empty).
func (e *edgeMap) enlarge(n int) {
	old := len(e.lines)
	if n+2 <= old {
		return
	}
	last := e.lines[old-1]
	grown := make([]int, n+2)
	copy(grown, e.lines)
	for i := old; i < n+2; i++ {
		grown[i] = last
	}
	e.lines = grown
}

func (e *edgeMap) segmentsOn(line int) []segment {
	return e.edges[e.lines[line]:e.lines[line+1]]
}

// replaceLine overwrites the segment list of a line with newSegs, which
// must already be sorted and disjoint, shifting every later line's range
// by the resulting length delta.
func (e *edgeMap) replaceLine(line int, newSegs []segment) {
	oldStart, oldEnd := e.lines[line], e.lines[line+1]
	delta := len(newSegs) - (oldEnd - oldStart)
	if delta == 0 {
		copy(e.edges[oldStart:oldEnd], newSegs)
		return
	}
	tail := append([]segment(nil), e.edges[oldEnd:]...)
	e.edges = append(e.edges[:oldStart], newSegs...)
	e.edges = append(e.edges, tail...)
	for l := line + 1; l < len(e.lines); l++ {
		e.lines[l] += delta
	}
}

// insert adds seg to line, first subtracting the overlap with mask's
// segments on the same line: the overlapping portion cancels out of both
// maps, and only the non-overlapping residual of seg is actually inserted
// into e, merged with e's existing, possibly-touching neighbors on that
// line. mask's segments shrink by whatever was cancelled.
func (e *edgeMap) insert(line int, seg segment, mask *edgeMap) {
	if seg.Length <= 0 {
		return
	}
	maskSegs := mask.segmentsOn(line)
	var residual, newMask []segment
	cursor := seg.Pos
	end := seg.end()
	for _, m := range maskSegs {
		ov := overlap(seg.Pos, seg.Length, m.Pos, m.Length)
		if ov <= 0 {
			newMask = append(newMask, m)
			continue
		}
		ovPos := max(seg.Pos, m.Pos)
		if cursor < ovPos {
			residual = append(residual, segment{cursor, ovPos - cursor})
		}
		cursor = ovPos + ov
		if m.Pos < seg.Pos {
			newMask = append(newMask, segment{m.Pos, seg.Pos - m.Pos})
		}
		if m.end() > end {
			newMask = append(newMask, segment{end, m.end() - end})
		}
	}
	if cursor < end {
		residual = append(residual, segment{cursor, end - cursor})
	}
	mask.replaceLine(line, newMask)
	e.insertMerged(line, residual)
}

// insertMerged merges newSegs (sorted, disjoint, already resolved against
// the paired mask) into the existing content of line, coalescing touching
// neighbors per the EdgeMap invariant.
func (e *edgeMap) insertMerged(line int, newSegs []segment) {
	if len(newSegs) == 0 {
		return
	}
	existing := e.segmentsOn(line)
	merged := make([]segment, 0, len(existing)+len(newSegs))
	i, j := 0, 0
	for i < len(existing) && j < len(newSegs) {
		if existing[i].Pos <= newSegs[j].Pos {
			merged = append(merged, existing[i])
			i++
		} else {
			merged = append(merged, newSegs[j])
			j++
		}
	}
	merged = append(merged, existing[i:]...)
	merged = append(merged, newSegs[j:]...)

	coalesced := merged[:0:0]
	for _, s := range merged {
		if n := len(coalesced); n > 0 && coalesced[n-1].end() >= s.Pos {
			if s.end() > coalesced[n-1].end() {
				coalesced[n-1].Length = s.end() - coalesced[n-1].Pos
			}
			continue
		}
		coalesced = append(coalesced, s)
	}
	e.replaceLine(line, coalesced)
}
