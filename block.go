package gc

import "math"

// BlockNo identifies an erase block within a die's block array. The zero
// value is a valid block number; BlockNone/BlockFail are out-of-band
// sentinels, never assigned to a real block.
type BlockNo uint32

const (
	// BlockNone marks an empty list end (head/tail/prev/next) or an
	// unmapped slot. It is never a candidate's own block number.
	BlockNone BlockNo = math.MaxUint32

	// BlockFail is returned by a selection query that found nothing.
	// Numerically identical to BlockNone (matches the firmware's shared
	// BLOCK_NONE/BLOCK_FAIL constant); kept as a distinct name because
	// the two mean different things to a caller (empty slot vs. failed
	// selection).
	BlockFail BlockNo = math.MaxUint32
)

// LogicalAddr identifies a logical slice address in the external mapping
// tables. NoLogicalAddr marks "unmapped."
type LogicalAddr uint32

// NoLogicalAddr is the external tables' NONE sentinel for a logical
// address slot that currently maps to nothing.
const NoLogicalAddr LogicalAddr = math.MaxUint32

// VirtualAddr identifies a virtual slice address (the NAND-facing address
// space the block/page/slice geometry is expressed in).
type VirtualAddr uint32

// Block is the per-block state tracked by the GC: how much of it is
// stale, how many times it has been erased, and its position (if any)
// inside the candidate index's intrusive linked lists.
//
// Membership invariant: a block is linked into exactly the bucket whose
// index equals InvalidSliceCount, or into no bucket at all (Free or Open
// for writes). Whenever InvalidSliceCount changes, the caller must
// Detach then Put before any Selection operation observes the block -
// the Block itself never enforces this; the index does.
type Block struct {
	InvalidSliceCount uint32
	EraseCount        uint32

	PrevBlock BlockNo
	NextBlock BlockNo
}

// blockTable holds every block on every die, indexed [die][blockNo]. It is
// a flat preallocated array - no node-per-block heap allocation - sized
// once in New from Config.Dies * Config.BlocksPerDie; Init only resets it.
type blockTable struct {
	dies         int
	blocksPerDie int
	blocks       [][]Block
}

func newBlockTable(dies, blocksPerDie int) *blockTable {
	t := &blockTable{dies: dies, blocksPerDie: blocksPerDie}
	t.blocks = make([][]Block, dies)
	for d := range t.blocks {
		t.blocks[d] = make([]Block, blocksPerDie)
	}
	t.reset()
	return t
}

func (t *blockTable) reset() {
	for d := range t.blocks {
		for b := range t.blocks[d] {
			t.blocks[d][b] = Block{PrevBlock: BlockNone, NextBlock: BlockNone}
		}
	}
}

func (t *blockTable) at(die int, block BlockNo) *Block {
	return &t.blocks[die][block]
}
