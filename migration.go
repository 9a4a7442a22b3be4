package gc

// RunGc reclaims one victim block on die: selects it via the configured
// policy, migrates any still-live slices off it, and submits an erase.
// RunGc always runs to completion in the sense of submitting all its work
// to the low-level scheduler - the actual read/write/erase completes
// asynchronously in hardware, and the scheduler's row-address dependency
// tracking (ReqOpts.RowAddrDependencyCheck) is what keeps READ before
// WRITE before ERASE on any one physical address, not an in-line wait
// here.
//
// If no candidate exists anywhere on die, selection is a fatal invariant
// violation (see ErrNoVictimAvailable): with the default Halt hook RunGc
// does not return normally; if a caller-supplied hook returns, RunGc
// returns without submitting anything.
func (g *GC) RunGc(die int) {
	victim, err := g.GetVictim(die)
	if err != nil {
		return // already logged and handed to the Halt hook by GetVictim
	}

	g.log.Debug().Int("die", die).Uint32("victim", uint32(victim)).Msg("gc: victim selected")

	block := g.blocks.at(die, victim)
	if block.InvalidSliceCount != g.config.SlicesPerBlock {
		g.migrateLivePages(die, victim)
	}

	g.scheduler.EraseBlock(die, victim)
	g.stats.recordErase(die)
}

// liveness applies the mapping double-check from spec.md's external
// interfaces section: v is live only if VirtualToLogical(v) names some
// logical slice L and LogicalToVirtual(L) points straight back to v. It
// returns the classifying error when v is not live, so a caller can tell
// an unmapped slice from a stale back-pointer instead of just skipping.
func (g *GC) liveness(v VirtualAddr) (LogicalAddr, error) {
	l := g.mapping.VirtualToLogical(v)
	if l == NoLogicalAddr {
		return 0, ErrUnmappedSlice
	}
	if g.mapping.LogicalToVirtual(l) != v {
		return 0, ErrStaleLiveness
	}
	return l, nil
}

// migrateLivePages walks every page of victim, skipping dead slices, and
// for each still-live one submits a paired READ (from the old location)
// and WRITE (to a freshly allocated destination on the same die), then
// rewires both mapping directions so the logical address resolves to the
// new location before the next page is considered.
func (g *GC) migrateLivePages(die int, victim BlockNo) {
	opts := DefaultReqOpts()

	for page := 0; page < g.config.PagesPerBlock; page++ {
		v := g.translator.VirtualSliceOf(die, victim, page)

		l, err := g.liveness(v)
		if err != nil {
			g.log.Trace().Int("die", die).Uint32("virtual", uint32(v)).Err(err).Msg("gc: slice not live, skipping")
			continue
		}

		// ---------------------------- READ ----------------------------
		readSlot := g.scheduler.AllocateRequestSlot()
		readBuf := g.scheduler.AllocateTempDataBuf(die)
		g.scheduler.BindBufferToSlotBlocking(readBuf, readSlot)
		g.scheduler.EnqueueLowLevel(readSlot, Request{
			Code:         ReqRead,
			LogicalSlice: l,
			VirtualSlice: v,
			Opts:         opts,
			Buf:          readBuf,
		})

		// ---------------------------- WRITE ---------------------------
		dest := g.destAlloc.AllocateDestinationForGc(die, victim)

		writeSlot := g.scheduler.AllocateRequestSlot()
		writeBuf := g.scheduler.AllocateTempDataBuf(die)
		g.scheduler.BindBufferToSlotBlocking(writeBuf, writeSlot)
		g.scheduler.EnqueueLowLevel(writeSlot, Request{
			Code:         ReqWrite,
			LogicalSlice: l,
			VirtualSlice: dest,
			Opts:         opts,
			Buf:          writeBuf,
		})

		// The old v is implicitly invalidated by the subsequent erase;
		// no explicit clear is required.
		g.mapping.SetLogicalToVirtual(l, dest)
		g.mapping.SetVirtualToLogical(dest, l)

		g.stats.recordMigratedSlice(die)
		g.log.Trace().Int("die", die).Uint32("logical", uint32(l)).
			Uint32("from", uint32(v)).Uint32("to", uint32(dest)).
			Msg("gc: slice migrated")
	}
}

// OnEraseComplete is invoked by the caller's low-level scheduler once the
// erase submitted by RunGc actually finishes in hardware. It bumps the
// block's erase count and resets the age baseline the active policy
// reads, so a freshly erased block starts cold again.
func (g *GC) OnEraseComplete(die int, block BlockNo) {
	b := g.blocks.at(die, block)
	b.EraseCount++

	now := g.clock.now()
	g.ages.markErased(die, block, now)
	g.ages.markInvalid(die, block, now)

	g.log.Debug().Int("die", die).Uint32("block", uint32(block)).
		Uint32("eraseCount", b.EraseCount).Msg("gc: erase complete")
}

// halt classifies the fatal no-victim condition, logs it, and invokes the
// caller-supplied Halt hook. Logging happens before Halt so the condition
// is visible in structured logs even if Halt terminates the process.
func (g *GC) halt(die int, err error) {
	g.log.Error().Int("die", die).Err(err).Msg("gc: fatal, no reclaimable block")
	g.haltHook(err)
}
