package gc

// The types in this file are contracts the GC consumes; it owns none of
// them. A host FTL supplies concrete implementations backed by its real
// NAND request pool, mapping tables, and free-slice allocator.

// AddressTranslator resolves a (die, block, page) triple to the virtual
// slice address the NAND chip actually addresses.
type AddressTranslator interface {
	VirtualSliceOf(die int, block BlockNo, page int) VirtualAddr
}

// MappingTables is the external logical<->virtual slice mapping. Liveness
// of a slice v is defined by the double-check:
//
//	live(v) ⇔ VirtualToLogical(v) == L ≠ NoLogicalAddr ∧ LogicalToVirtual(L) == v
//
// This double-check is the only correct liveness test - reading
// VirtualToLogical alone tolerates stale back-pointers that a single-sided
// check would wrongly treat as live.
type MappingTables interface {
	VirtualToLogical(v VirtualAddr) LogicalAddr
	LogicalToVirtual(l LogicalAddr) VirtualAddr
	SetLogicalToVirtual(l LogicalAddr, v VirtualAddr)
	SetVirtualToLogical(v VirtualAddr, l LogicalAddr)
}

// ReqCode is the NAND request opcode submitted to the low-level scheduler.
type ReqCode int

const (
	ReqRead ReqCode = iota
	ReqWrite
)

// ReqOpts mirrors the firmware's fixed per-request option bundle
// (reqPoolPtr->reqPool[tag].reqOpt): every field here is set identically
// for both the READ and the WRITE half of a migrated slice, per spec.
type ReqOpts struct {
	DataBufFormat          string // "temp entry"
	AddrMode               string // "virtual slice address"
	ECC                    bool
	ECCWarning             bool
	RowAddrDependencyCheck bool
	BlockSpace             string // "main"
}

// DefaultReqOpts returns the fixed option bundle every GC-issued request
// uses: ECC on, ECC-warning off, row-address dependency check on, main
// block space, temp-entry buffers addressed by virtual slice.
func DefaultReqOpts() ReqOpts {
	return ReqOpts{
		DataBufFormat:          "temp entry",
		AddrMode:               "virtual slice address",
		ECC:                    true,
		ECCWarning:             false,
		RowAddrDependencyCheck: true,
		BlockSpace:             "main",
	}
}

// ReqSlot is an opaque tag for a request pool slot, handed back by
// AllocateRequestSlot and passed to EnqueueLowLevel.
type ReqSlot uint32

// TempBuf is an opaque tag for a temporary staging buffer, handed back by
// AllocateTempDataBuf and bound to a request slot before enqueue.
type TempBuf uint32

// Request is the descriptor the GC populates and hands to the scheduler.
// Submitting it is non-blocking: it enqueues onto the low-level scheduler,
// which tracks row-address dependencies so READ-before-WRITE-before-ERASE
// ordering on the same physical address is preserved without in-line
// waits.
type Request struct {
	Code         ReqCode
	LogicalSlice LogicalAddr
	VirtualSlice VirtualAddr // READ: source; WRITE: destination
	Opts         ReqOpts
	Buf          TempBuf
}

// RequestScheduler is the low-level NAND request pool and queue the GC
// submits work to. It is shared across all FTL users; its allocator is
// the synchronization point, not a lock the GC holds.
type RequestScheduler interface {
	AllocateRequestSlot() ReqSlot
	AllocateTempDataBuf(die int) TempBuf
	BindBufferToSlotBlocking(buf TempBuf, slot ReqSlot)
	EnqueueLowLevel(slot ReqSlot, req Request)

	// EraseBlock submits an erase for (die, block) and returns
	// immediately; the erase completes asynchronously in hardware. The
	// caller must invoke GC.OnEraseComplete once it has, so the GC can
	// reset the victim's age baseline.
	EraseBlock(die int, block BlockNo)
}

// DestinationAllocator supplies a free virtual slice on the same die for a
// GC write, guaranteed not to be inside the block currently being
// reclaimed.
type DestinationAllocator interface {
	AllocateDestinationForGc(die int, victim BlockNo) VirtualAddr
}
