package vector

import (
	"math"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap returns the positions of the set bits of b as a roaring bitmap.
// Positions beyond math.MaxUint32 are not representable and are omitted.
func (b *Bits) Bitmap() *roaring.Bitmap {
	bm := roaring.New()
	for i, x := range b.data[:bytesFor(b.size)] {
		for x != 0 {
			pos := i*8 + bits.TrailingZeros8(x)
			if uint64(pos) > math.MaxUint32 {
				return bm
			}
			bm.Add(uint32(pos))
			x &= x - 1
		}
	}
	return bm
}

// BitsFromBitmap creates a Bits of length n with the positions held in bm
// set. Positions at or past n are ignored.
func BitsFromBitmap(bm *roaring.Bitmap, n int, opts ...Option) (*Bits, error) {
	b, err := NewBitsSized(n, opts...)
	if err != nil {
		return nil, err
	}
	if bm == nil {
		return b, nil
	}
	it := bm.Iterator()
	for it.HasNext() {
		pos := it.Next()
		if uint64(pos) >= uint64(n) {
			break
		}
		b.put(int(pos), true)
	}
	return b, nil
}
