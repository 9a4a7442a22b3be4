package gc

import "math/bits"

// bucketList is one invalid-slice-count bucket's doubly-linked list
// descriptor: head/tail sentinels into the owning die's block table.
//
// Invariants (enforced by candidateIndex, never by bucketList alone):
//   - head == BlockNone iff tail == BlockNone iff the list is empty
//   - the block at head has PrevBlock == BlockNone
//   - the block at tail has NextBlock == BlockNone
//   - every block reachable from head via NextBlock has PrevBlock
//     pointing back to its predecessor
type bucketList struct {
	head BlockNo
	tail BlockNo
}

// candidateIndex is the per-die array of GC candidate buckets, one per
// possible invalid-slice count in [0, slicesPerBlock]. Bucket 0 (all-valid
// blocks) is a legal bucket to Put into but is never scanned by Selection.
//
// nonEmpty is a bitset mirror of "which buckets currently have a block in
// them," one bit per bucket index, words ordered so bit i%64 of word i/64
// covers bucket i. It exists purely so PickHighestNonEmpty can find the
// highest occupied bucket with a leading-zero count instead of a linear
// probe over every possible count - a bitmap-plus-CLZ priority encoder.
type candidateIndex struct {
	blocks *blockTable

	slicesPerBlock int
	buckets        [][]bucketList // [die][count]
	nonEmpty       [][]uint64     // [die][word]
}

func newCandidateIndex(blocks *blockTable, dies, slicesPerBlock int) *candidateIndex {
	idx := &candidateIndex{
		blocks:         blocks,
		slicesPerBlock: slicesPerBlock,
	}
	numBuckets := slicesPerBlock + 1
	numWords := (numBuckets + 63) / 64
	idx.buckets = make([][]bucketList, dies)
	idx.nonEmpty = make([][]uint64, dies)
	for d := 0; d < dies; d++ {
		idx.buckets[d] = make([]bucketList, numBuckets)
		idx.nonEmpty[d] = make([]uint64, numWords)
	}
	idx.reset()
	return idx
}

func (idx *candidateIndex) reset() {
	for d := range idx.buckets {
		for c := range idx.buckets[d] {
			idx.buckets[d][c] = bucketList{head: BlockNone, tail: BlockNone}
		}
		for w := range idx.nonEmpty[d] {
			idx.nonEmpty[d][w] = 0
		}
	}
}

func (idx *candidateIndex) markNonEmpty(die, count int) {
	idx.nonEmpty[die][count/64] |= 1 << uint(count%64)
}

func (idx *candidateIndex) markEmpty(die, count int) {
	idx.nonEmpty[die][count/64] &^= 1 << uint(count%64)
}

// put links block onto the tail of bucket count on die. Precondition: the
// block is not currently linked into any list (callers must Detach first
// if it might be).
func (idx *candidateIndex) put(die int, block BlockNo, count uint32) {
	b := idx.blocks.at(die, block)
	list := &idx.buckets[die][count]

	if list.tail != BlockNone {
		b.PrevBlock = list.tail
		b.NextBlock = BlockNone
		idx.blocks.at(die, list.tail).NextBlock = block
		list.tail = block
	} else {
		b.PrevBlock = BlockNone
		b.NextBlock = BlockNone
		list.head = block
		list.tail = block
	}
	idx.markNonEmpty(die, int(count))
}

// detach unlinks block from whichever bucket it currently sits in, as
// determined by reading its own InvalidSliceCount. Handles all four
// positions: interior, tail, head, singleton.
func (idx *candidateIndex) detach(die int, block BlockNo) {
	b := idx.blocks.at(die, block)
	count := b.InvalidSliceCount
	list := &idx.buckets[die][count]

	next, prev := b.NextBlock, b.PrevBlock

	switch {
	case next != BlockNone && prev != BlockNone: // interior
		idx.blocks.at(die, prev).NextBlock = next
		idx.blocks.at(die, next).PrevBlock = prev
	case next == BlockNone && prev != BlockNone: // tail
		idx.blocks.at(die, prev).NextBlock = BlockNone
		list.tail = prev
	case next != BlockNone && prev == BlockNone: // head
		idx.blocks.at(die, next).PrevBlock = BlockNone
		list.head = next
	default: // singleton
		list.head = BlockNone
		list.tail = BlockNone
		idx.markEmpty(die, int(count))
	}

	b.PrevBlock = BlockNone
	b.NextBlock = BlockNone
}

// highestNonEmpty returns the highest bucket index in [1, slicesPerBlock]
// that currently has a member, or -1 if buckets 1..S are all empty.
// Bucket 0 is deliberately excluded: an all-valid block yields nothing.
func (idx *candidateIndex) highestNonEmpty(die int) int {
	words := idx.nonEmpty[die]
	for w := len(words) - 1; w >= 0; w-- {
		mask := words[w]
		if w == 0 {
			mask &^= 1 // bucket 0 never counts as a candidate
		}
		if mask == 0 {
			continue
		}
		highBit := 63 - bits.LeadingZeros64(mask)
		bucket := w*64 + highBit
		if bucket > idx.slicesPerBlock {
			// Only possible in the top word when slicesPerBlock+1 isn't
			// a multiple of 64; such bits are never set by put/detach,
			// but guard explicitly rather than trust that invariant here.
			continue
		}
		return bucket
	}
	return -1
}

// pickHighestNonEmpty returns the head block of the highest non-empty
// bucket without removing it, or BlockFail if every candidate bucket is
// empty.
func (idx *candidateIndex) pickHighestNonEmpty(die int) BlockNo {
	bucket := idx.highestNonEmpty(die)
	if bucket < 0 {
		return BlockFail
	}
	return idx.buckets[die][bucket].head
}

// popHead removes and returns the head of the given bucket directly,
// without the general detach() bucket-lookup - used by the Greedy policy,
// which already knows which bucket it popped from.
func (idx *candidateIndex) popHead(die, bucket int) BlockNo {
	list := &idx.buckets[die][bucket]
	block := list.head
	if block == BlockNone {
		return BlockFail
	}
	next := idx.blocks.at(die, block).NextBlock
	if next != BlockNone {
		idx.blocks.at(die, next).PrevBlock = BlockNone
		list.head = next
	} else {
		list.head = BlockNone
		list.tail = BlockNone
		idx.markEmpty(die, bucket)
	}
	b := idx.blocks.at(die, block)
	b.PrevBlock = BlockNone
	b.NextBlock = BlockNone
	return block
}

// iterateCandidatesDescending visits every block in every non-empty
// bucket from bucket slicesPerBlock down to bucket 1 (bucket 0 is never
// visited - an all-valid block can't be reclaimed for yield), head-to-tail
// within each bucket. The next pointer is snapshotted before visit runs,
// so visit may detach the current block without corrupting the walk
// (Cost-Benefit/CAT selection itself detaches its pick only after the
// scan returns).
func (idx *candidateIndex) iterateCandidatesDescending(die int, visit func(block BlockNo, count uint32)) {
	for count := idx.slicesPerBlock; count >= 1; count-- {
		block := idx.buckets[die][count].head
		for block != BlockNone {
			next := idx.blocks.at(die, block).NextBlock
			visit(block, uint32(count))
			block = next
		}
	}
}
