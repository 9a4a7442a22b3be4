package gc

// erasedCall and enqueuedReq record one submission each, for tests that
// want to assert on exactly what the migration engine issued.
type erasedCall struct {
	die   int
	block BlockNo
}

type enqueuedReq struct {
	die  int
	slot ReqSlot
	req  Request
}

// fakeFTL is an in-memory stand-in for the four external collaborators
// the GC consumes: address translation, logical/virtual mapping, the
// low-level NAND request scheduler, and the GC destination allocator. It
// records every submitted request instead of touching real NAND, so
// scenario tests can assert on exactly what the migration engine issued.
type fakeFTL struct {
	pagesPerBlock int

	// virt2log / log2virt mirror the external mapping tables directly;
	// die 0 only - tests that need isolation across dies build one
	// fakeFTL per die.
	virt2log []LogicalAddr
	log2virt []VirtualAddr

	nextSlot     ReqSlot
	nextBuf      TempBuf
	nextFreeAddr VirtualAddr // monotonically increasing "free" slice allocator

	erased   []erasedCall
	requests []enqueuedReq
}

func newFakeFTL(pagesPerBlock, logicalSpace, virtualSpace int) *fakeFTL {
	f := &fakeFTL{pagesPerBlock: pagesPerBlock}
	f.virt2log = make([]LogicalAddr, virtualSpace)
	f.log2virt = make([]VirtualAddr, logicalSpace)
	for i := range f.virt2log {
		f.virt2log[i] = NoLogicalAddr
	}
	for i := range f.log2virt {
		f.log2virt[i] = VirtualAddr(NoLogicalAddr) // reuse sentinel value
	}
	f.nextFreeAddr = VirtualAddr(virtualSpace / 2) // upper half of the virtual table, well clear of any test block's pages
	return f
}

func (f *fakeFTL) VirtualSliceOf(die int, block BlockNo, page int) VirtualAddr {
	return VirtualAddr(uint32(block)*uint32(f.pagesPerBlock) + uint32(page))
}

func (f *fakeFTL) VirtualToLogical(v VirtualAddr) LogicalAddr {
	return f.virt2log[v]
}

func (f *fakeFTL) LogicalToVirtual(l LogicalAddr) VirtualAddr {
	return f.log2virt[l]
}

func (f *fakeFTL) SetLogicalToVirtual(l LogicalAddr, v VirtualAddr) {
	f.log2virt[l] = v
}

func (f *fakeFTL) SetVirtualToLogical(v VirtualAddr, l LogicalAddr) {
	f.virt2log[v] = l
}

func (f *fakeFTL) AllocateRequestSlot() ReqSlot {
	f.nextSlot++
	return f.nextSlot
}

func (f *fakeFTL) AllocateTempDataBuf(die int) TempBuf {
	f.nextBuf++
	return f.nextBuf
}

func (f *fakeFTL) BindBufferToSlotBlocking(buf TempBuf, slot ReqSlot) {}

func (f *fakeFTL) EnqueueLowLevel(slot ReqSlot, req Request) {
	f.requests = append(f.requests, enqueuedReq{die: 0, slot: slot, req: req})
}

func (f *fakeFTL) EraseBlock(die int, block BlockNo) {
	f.erased = append(f.erased, erasedCall{die: die, block: block})
}

func (f *fakeFTL) AllocateDestinationForGc(die int, victim BlockNo) VirtualAddr {
	addr := f.nextFreeAddr
	f.nextFreeAddr++
	return addr
}

func (f *fakeFTL) reads() []Request {
	var out []Request
	for _, r := range f.requests {
		if r.req.Code == ReqRead {
			out = append(out, r.req)
		}
	}
	return out
}

func (f *fakeFTL) writes() []Request {
	var out []Request
	for _, r := range f.requests {
		if r.req.Code == ReqWrite {
			out = append(out, r.req)
		}
	}
	return out
}
