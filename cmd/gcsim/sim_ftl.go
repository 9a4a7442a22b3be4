package main

import (
	"math/rand"

	gc "github.com/enclab-oss/cosmosplus-gc"
)

// simFTL is a minimal, randomized stand-in for a real FTL's address
// translator, mapping tables, NAND scheduler, and destination allocator.
// It exists only to give gcsim something to drive; it makes no attempt at
// a realistic free-space model.
type simFTL struct {
	pagesPerBlock int

	log2virt []gc.VirtualAddr
	virt2log []gc.LogicalAddr

	nextSlot gc.ReqSlot
	nextBuf  gc.TempBuf
	free     gc.VirtualAddr

	lastErased []gc.BlockNo
	rng        *rand.Rand
}

func newSimFTL(dies, blocksPerDie, pagesPerBlock int, seed int64) *simFTL {
	totalVirtual := dies * blocksPerDie * pagesPerBlock
	f := &simFTL{
		pagesPerBlock: pagesPerBlock,
		log2virt:      make([]gc.VirtualAddr, totalVirtual),
		virt2log:      make([]gc.LogicalAddr, totalVirtual),
		free:          gc.VirtualAddr(totalVirtual),
		lastErased:    make([]gc.BlockNo, dies),
		rng:           rand.New(rand.NewSource(seed)),
	}
	for i := range f.virt2log {
		f.virt2log[i] = gc.NoLogicalAddr
	}
	return f
}

func (f *simFTL) VirtualSliceOf(die int, block gc.BlockNo, page int) gc.VirtualAddr {
	return gc.VirtualAddr(uint32(block)*uint32(f.pagesPerBlock) + uint32(page))
}

func (f *simFTL) VirtualToLogical(v gc.VirtualAddr) gc.LogicalAddr { return f.virt2log[v] }
func (f *simFTL) LogicalToVirtual(l gc.LogicalAddr) gc.VirtualAddr { return f.log2virt[l] }

func (f *simFTL) SetLogicalToVirtual(l gc.LogicalAddr, v gc.VirtualAddr) { f.log2virt[l] = v }
func (f *simFTL) SetVirtualToLogical(v gc.VirtualAddr, l gc.LogicalAddr) { f.virt2log[v] = l }

func (f *simFTL) AllocateRequestSlot() gc.ReqSlot {
	f.nextSlot++
	return f.nextSlot
}

func (f *simFTL) AllocateTempDataBuf(die int) gc.TempBuf {
	f.nextBuf++
	return f.nextBuf
}

func (f *simFTL) BindBufferToSlotBlocking(buf gc.TempBuf, slot gc.ReqSlot) {}

func (f *simFTL) EnqueueLowLevel(slot gc.ReqSlot, req gc.Request) {}

func (f *simFTL) EraseBlock(die int, block gc.BlockNo) {
	f.lastErased[die] = block
}

func (f *simFTL) AllocateDestinationForGc(die int, victim gc.BlockNo) gc.VirtualAddr {
	f.free++
	return f.free
}

// LastErased returns the block EraseBlock most recently recorded for die,
// so the driver loop can complete the async erase it just submitted.
func (f *simFTL) LastErased(die int) gc.BlockNo {
	return f.lastErased[die]
}
