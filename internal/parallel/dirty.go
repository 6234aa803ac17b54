package parallel

import (
	"math/bits"
	"sync/atomic"
)

// DirtyRegion is a bitmap of tiles that need redrawing, one bit per tile
// in row-major order. All methods are safe for concurrent use.
type DirtyRegion struct {
	words  []atomic.Uint64
	tilesX int
	tilesY int
}

// NewDirtyRegion creates a clean bitmap for a tilesX x tilesY grid.
func NewDirtyRegion(tilesX, tilesY int) *DirtyRegion {
	if tilesX < 0 || tilesY < 0 {
		tilesX, tilesY = 0, 0
	}
	return &DirtyRegion{
		words:  make([]atomic.Uint64, (tilesX*tilesY+63)/64),
		tilesX: tilesX,
		tilesY: tilesY,
	}
}

func (d *DirtyRegion) bit(tx, ty int) (word int, mask uint64, ok bool) {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return 0, 0, false
	}
	idx := ty*d.tilesX + tx
	return idx >> 6, 1 << (idx & 63), true
}

// Mark flags one tile. Out-of-range coordinates are ignored.
func (d *DirtyRegion) Mark(tx, ty int) {
	if w, m, ok := d.bit(tx, ty); ok {
		d.words[w].Or(m)
	}
}

// MarkSpan flags the inclusive tile range [tx0, tx1] x [ty0, ty1].
func (d *DirtyRegion) MarkSpan(tx0, ty0, tx1, ty1 int) {
	for ty := max(ty0, 0); ty <= min(ty1, d.tilesY-1); ty++ {
		for tx := max(tx0, 0); tx <= min(tx1, d.tilesX-1); tx++ {
			d.Mark(tx, ty)
		}
	}
}

// MarkAll flags every tile.
func (d *DirtyRegion) MarkAll() {
	total := d.tilesX * d.tilesY
	for i := range d.words {
		n := min(total-i*64, 64)
		if n == 64 {
			d.words[i].Store(^uint64(0))
		} else {
			d.words[i].Store(uint64(1)<<n - 1)
		}
	}
}

// IsDirty reports whether the tile is flagged.
func (d *DirtyRegion) IsDirty(tx, ty int) bool {
	w, m, ok := d.bit(tx, ty)
	return ok && d.words[w].Load()&m != 0
}

// Count returns the number of flagged tiles.
func (d *DirtyRegion) Count() int {
	n := 0
	for i := range d.words {
		n += bits.OnesCount64(d.words[i].Load())
	}
	return n
}

// Take clears the bitmap and returns the tiles that were flagged, in
// row-major order, as [tx, ty] pairs.
func (d *DirtyRegion) Take() [][2]int {
	var out [][2]int
	for i := range d.words {
		word := d.words[i].Swap(0)
		for word != 0 {
			idx := i*64 + bits.TrailingZeros64(word)
			out = append(out, [2]int{idx % d.tilesX, idx / d.tilesX})
			word &= word - 1
		}
	}
	return out
}
