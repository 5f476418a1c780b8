package rectpack

import (
	"cmp"
	"slices"
)

// batchSort orders rects by descending max(W, H), the default and only
// batch ordering: larger rectangles are placed first so the scan has more
// free boundary to pin them against.
func batchSort(rects []*Rect) {
	slices.SortStableFunc(rects, func(a, b *Rect) int {
		return cmp.Compare(maxSide(b.W, b.H), maxSide(a.W, a.H))
	})
}
