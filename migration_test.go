package gc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRunGc_AllInvalidVictim_SkipsMigration reproduces spec.md §8
// scenario 1: a victim whose invalid count equals the slice-per-block
// capacity has nothing live on it, so RunGc must submit exactly one erase
// and issue no read/write pair at all.
func TestRunGc_AllInvalidVictim_SkipsMigration(t *testing.T) {
	ftl := newFakeFTL(4, 256, 256)
	g := New(Config{Dies: 1, BlocksPerDie: 8, PagesPerBlock: 4, SlicesPerBlock: 4, Policy: Greedy},
		ftl, ftl, ftl, ftl)

	const victim BlockNo = 3
	g.Put(0, victim, 4)

	g.RunGc(0)

	require.Len(t, ftl.erased, 1)
	require.Equal(t, erasedCall{die: 0, block: victim}, ftl.erased[0])
	require.Empty(t, ftl.reads())
	require.Empty(t, ftl.writes())

	stats := g.StatsSnapshot()
	require.Equal(t, uint64(1), stats.BlocksErased[0])
	require.Equal(t, uint64(0), stats.SlicesMigrated[0])
}

// TestRunGc_MixedVictim_MigratesExactlyTheLiveSlice reproduces spec.md §8
// scenario 2: a victim with 3 dead pages and 1 live page mapping to
// logical address 7. RunGc must migrate that one slice with a paired
// READ/WRITE and rewire both mapping directions, then erase.
func TestRunGc_MixedVictim_MigratesExactlyTheLiveSlice(t *testing.T) {
	ftl := newFakeFTL(4, 256, 256)
	g := New(Config{Dies: 1, BlocksPerDie: 8, PagesPerBlock: 4, SlicesPerBlock: 4, Policy: Greedy},
		ftl, ftl, ftl, ftl)

	const victim BlockNo = 2
	const liveLogical LogicalAddr = 7
	liveVirtual := ftl.VirtualSliceOf(0, victim, 2) // page 2 of the victim is the one live page

	ftl.SetLogicalToVirtual(liveLogical, liveVirtual)
	ftl.SetVirtualToLogical(liveVirtual, liveLogical)

	g.Put(0, victim, 3)
	g.RunGc(0)

	reads := ftl.reads()
	require.Len(t, reads, 1)
	require.Equal(t, liveLogical, reads[0].LogicalSlice)
	require.Equal(t, liveVirtual, reads[0].VirtualSlice)

	writes := ftl.writes()
	require.Len(t, writes, 1)
	require.Equal(t, liveLogical, writes[0].LogicalSlice)
	dest := writes[0].VirtualSlice

	require.Equal(t, dest, ftl.LogicalToVirtual(liveLogical))
	require.Equal(t, liveLogical, ftl.VirtualToLogical(dest))

	require.Len(t, ftl.erased, 1)
	require.Equal(t, erasedCall{die: 0, block: victim}, ftl.erased[0])

	stats := g.StatsSnapshot()
	require.Equal(t, uint64(1), stats.SlicesMigrated[0])
	require.Equal(t, uint64(1), stats.BlocksErased[0])
}

// TestRunGc_SkipsUnmappedAndStaleSlices exercises both ways a page can be
// dead without InvalidSliceCount accounting for it explicitly: no logical
// owner at all, and a logical owner whose back-pointer has moved on.
func TestRunGc_SkipsUnmappedAndStaleSlices(t *testing.T) {
	ftl := newFakeFTL(4, 256, 256)
	g := New(Config{Dies: 1, BlocksPerDie: 8, PagesPerBlock: 4, SlicesPerBlock: 4, Policy: Greedy},
		ftl, ftl, ftl, ftl)

	const victim BlockNo = 5
	page1Virtual := ftl.VirtualSliceOf(0, victim, 1)
	// A stale back-pointer: logical 9 used to live here, but now its
	// LogicalToVirtual points elsewhere.
	ftl.SetVirtualToLogical(page1Virtual, 9)
	ftl.SetLogicalToVirtual(9, ftl.VirtualSliceOf(0, victim, 0)+1000)

	g.Put(0, victim, 3)
	g.RunGc(0)

	require.Empty(t, ftl.reads())
	require.Empty(t, ftl.writes())
	require.Len(t, ftl.erased, 1)
}

// TestGC_Liveness_ClassifiesUnmappedAndStale asserts directly on the
// error classification migrateLivePages's skip paths produce, rather
// than only on their downstream effect.
func TestGC_Liveness_ClassifiesUnmappedAndStale(t *testing.T) {
	ftl := newFakeFTL(4, 256, 256)
	g := New(Config{Dies: 1, BlocksPerDie: 8, PagesPerBlock: 4, SlicesPerBlock: 4, Policy: Greedy},
		ftl, ftl, ftl, ftl)

	unmapped := ftl.VirtualSliceOf(0, 1, 0)
	_, err := g.liveness(unmapped)
	require.ErrorIs(t, err, ErrUnmappedSlice)

	stale := ftl.VirtualSliceOf(0, 1, 1)
	ftl.SetVirtualToLogical(stale, 9)
	ftl.SetLogicalToVirtual(9, ftl.VirtualSliceOf(0, 1, 2)) // points elsewhere now
	_, err = g.liveness(stale)
	require.ErrorIs(t, err, ErrStaleLiveness)

	live := ftl.VirtualSliceOf(0, 1, 3)
	ftl.SetVirtualToLogical(live, 12)
	ftl.SetLogicalToVirtual(12, live)
	l, err := g.liveness(live)
	require.NoError(t, err)
	require.Equal(t, LogicalAddr(12), l)
}

// TestOnEraseComplete_ResetsAgeBaselinesAndBumpsEraseCount exercises the
// two-phase split directly: RunGc only submits the erase, and it is
// OnEraseComplete that actually bumps EraseCount and resets both age
// baselines once the hardware finishes.
func TestOnEraseComplete_ResetsAgeBaselinesAndBumpsEraseCount(t *testing.T) {
	ftl := newFakeFTL(4, 256, 256)
	g := New(Config{Dies: 1, BlocksPerDie: 8, PagesPerBlock: 4, SlicesPerBlock: 4, Policy: Greedy},
		ftl, ftl, ftl, ftl)

	const victim BlockNo = 4
	g.Put(0, victim, 4)
	before := g.blocks.at(0, victim).EraseCount

	g.RunGc(0)
	require.Equal(t, before, g.blocks.at(0, victim).EraseCount, "RunGc submits the erase but must not bump EraseCount itself")

	g.OnEraseComplete(0, victim)
	require.Equal(t, before+1, g.blocks.at(0, victim).EraseCount)
	require.Equal(t, g.clock.now(), g.ages.lastErase[0][victim])
	require.Equal(t, g.clock.now(), g.ages.lastInvalid[0][victim])
}
