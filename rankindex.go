package ranksel

// superBlock is the fixed-size summary record for one S-bit (2-word)
// span of a bitVector. Laid out so it is a single 32-byte record (two
// 8-byte words, an 8-byte rank prefix, an 8-byte auxiliary popcount) —
// a divisor of a 64-byte cache line, per spec's layout requirement.
type superBlock struct {
	w0         uint64
	w1         uint64
	rankPrefix uint64

	// onesInW0 is the popcount of w0 (a count of ones, not of zeros —
	// see DESIGN.md's resolved Open Question).
	// select uses it, via cumltv, without re-scanning w0.
	onesInW0 uint64
}

// rankIndex is a two-level precomputed summary over a bitVector that
// answers countOnesBefore (rank1) in O(1).
type rankIndex struct {
	blocks []superBlock
}

// buildRankIndex constructs a rankIndex over bv. Per invariant I3, the
// block count is floor(N/S)+1: there is always one trailing record past
// the last full super-block, zero-padded, so rank queries at pos == N
// never index out of range.
func buildRankIndex(bv *bitVector) *rankIndex {
	n := bv.len()
	numBlocks := n/superBlockBits + 1
	blocks := make([]superBlock, numBlocks)

	var r uint64
	for i := range blocks {
		j := uint64(i) * wordsPerSuperBlock
		w0 := bv.wordAt(j)
		w1 := bv.wordAt(j + 1)

		b0sum := popcount64(w0)
		blocks[i] = superBlock{
			w0:         w0,
			w1:         w1,
			rankPrefix: r,
			onesInW0:   b0sum,
		}

		r += b0sum + popcount64(w1)
	}

	return &rankIndex{blocks: blocks}
}

// countOnesBefore returns the number of 1-bits in [0, pos), i.e. rank1
// of "one past" pos. pos may range over [0, N]; the trailing super-block
// record makes pos == N safe.
//
// The mask computation is the branch-free kernel spec calls for: mask
// covers the low bits of whichever word contains pos, and m is either
// all-zero or all-one depending on which of the super-block's two words
// that is, so (mask | m) and (mask & m) select full-word-or-masked-word
// without a conditional jump.
func (ri *rankIndex) countOnesBefore(pos uint64) uint64 {
	blk := &ri.blocks[pos/superBlockBits]

	off := pos % superBlockBits
	rem := off % wordBits
	mask := uint64(1)<<rem - 1

	// off/wordBits is 0 or 1 (two words per super-block); negating it
	// yields all-zero or all-one.
	m := -(off / wordBits)

	r := blk.rankPrefix
	r += popcount64(blk.w0 & (mask | m))
	r += popcount64(blk.w1 & (mask & m))
	return r
}
