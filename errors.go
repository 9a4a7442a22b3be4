package gc

import "errors"

// ErrNoVictimAvailable is the one fatal condition in this package:
// GetVictim/RunGc was invoked on a die whose candidate buckets (1..S) are
// all empty. The device cannot make forward progress without a
// reclaimable block, so this is surfaced to the configured Halt hook
// (default: panic). GetVictim also returns it, which a caller only sees
// when a hook supplied via WithHalt returns.
var ErrNoVictimAvailable = errors.New("gc: no victim available on die")

// ErrUnmappedSlice and ErrStaleLiveness classify why a page was skipped
// during migration. Both are recovered internally - the migration loop
// simply moves to the next page - and are exported only so tests can
// assert on the classification the liveness check produced.
var (
	// ErrUnmappedSlice: VirtualToLogical(v) == NoLogicalAddr.
	ErrUnmappedSlice = errors.New("gc: virtual slice has no logical owner")

	// ErrStaleLiveness: VirtualToLogical(v) == L, but
	// LogicalToVirtual(L) != v - a stale back-pointer, not live data.
	ErrStaleLiveness = errors.New("gc: stale back-pointer, slice not live")
)
