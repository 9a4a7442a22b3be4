package gc

import (
	"os"

	"github.com/rs/zerolog"
)

// Config describes the fixed die/block/page geometry and policy choice a
// GC is built for. In the original firmware these were compile-time
// constants from ftl_config.h; here they're constructor arguments so a
// single binary can stand up GCs with different geometries or policies
// for testing.
type Config struct {
	Dies           int
	BlocksPerDie   int
	PagesPerBlock  int
	SlicesPerBlock uint32
	Policy         PolicyKind
}

// GC is one owned FTL subsystem: the candidate index, age tables,
// activity clock, and block table for every die it was configured with.
// It is not safe for concurrent use - by contract (see spec.md §5) the
// host FTL loop is the only caller and serializes Put/Detach/RunGc
// invocations per die and across dies on a single thread.
type GC struct {
	config Config

	blocks *blockTable
	index  *candidateIndex
	clock  activityClock
	ages   *ageTable
	policy policy
	stats  *Stats

	translator AddressTranslator
	mapping    MappingTables
	scheduler  RequestScheduler
	destAlloc  DestinationAllocator

	log      zerolog.Logger
	haltHook func(error)
}

// Option configures a GC at construction time.
type Option func(*GC)

// WithLogger overrides the default (stderr, info-level) zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *GC) { g.log = l }
}

// WithHalt overrides the default fatal-halt behavior (panic) with a
// caller-supplied hook, e.g. to record the error in a test instead of
// crashing the process.
func WithHalt(h func(error)) Option {
	return func(g *GC) { g.haltHook = h }
}

// New builds a GC around the given geometry/policy Config and its
// external collaborators, then zeros all buckets, age tables, and the
// activity clock - equivalent to the firmware's InitGcVictimMap.
func New(cfg Config, translator AddressTranslator, mapping MappingTables, scheduler RequestScheduler, destAlloc DestinationAllocator, opts ...Option) *GC {
	g := &GC{
		config:     cfg,
		blocks:     newBlockTable(cfg.Dies, cfg.BlocksPerDie),
		ages:       newAgeTable(cfg.Dies, cfg.BlocksPerDie),
		stats:      newStats(cfg.Dies),
		translator: translator,
		mapping:    mapping,
		scheduler:  scheduler,
		destAlloc:  destAlloc,
		log:        zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Str("component", "gc").Logger(),
		haltHook:   func(err error) { panic(err) },
	}
	g.index = newCandidateIndex(g.blocks, cfg.Dies, int(cfg.SlicesPerBlock))
	g.policy = newPolicy(cfg.Policy)

	for _, opt := range opts {
		opt(g)
	}

	g.Init()
	return g
}

// Init zeros the candidate buckets, age tables, and activity clock across
// every configured die. New already calls this once; it is exported so a
// caller can re-arm a GC for a fresh simulation run without reallocating.
func (g *GC) Init() {
	g.blocks.reset()
	g.index.reset()
	g.ages.reset()
	g.clock = activityClock{}
	g.stats = newStats(g.config.Dies)
}

// Put inserts block at the tail of the bucket for invalidCount on die.
// Precondition: block is not currently linked into any bucket (callers
// that might be moving a block between buckets must Detach first).
//
// If invalidCount > 0 the activity clock advances by one tick and that
// tick is stamped into the block's CAT age baseline (lastInvalidTick).
// Puts into bucket 0 (block has no invalid slices - not a GC candidate
// for yield, though still tracked for occupancy) never advance the
// clock.
func (g *GC) Put(die int, block BlockNo, invalidCount uint32) {
	g.blocks.at(die, block).InvalidSliceCount = invalidCount
	g.index.put(die, block, invalidCount)

	if invalidCount > 0 {
		g.clock.advance()
		g.ages.markInvalid(die, block, g.clock.now())
	}
}

// Detach removes block from whichever bucket it currently occupies,
// determined by reading its own InvalidSliceCount. It performs no age or
// clock bookkeeping - only the unlink.
func (g *GC) Detach(die int, block BlockNo) {
	g.index.detach(die, block)
}

// GetVictim runs the configured policy's selection strategy and returns
// the chosen block, detaching it from the index as a side effect (Greedy
// does this via a direct head-pop; Cost-Benefit/CAT via the general
// detach after the scan). If no candidate exists anywhere on die, this is
// a fatal invariant violation: the Halt hook is invoked and BlockFail is
// returned to the caller that didn't look at the error.
func (g *GC) GetVictim(die int) (BlockNo, error) {
	victim, err := g.policy.selectVictim(g, die)
	if err != nil {
		g.halt(die, err)
		return BlockFail, err
	}
	return victim, nil
}

// StatsSnapshot returns the live per-die telemetry counters. The returned
// pointer aliases the GC's internal state; callers that want a stable
// snapshot should copy it (or use Checkpoint, which marshals under the
// hood).
func (g *GC) StatsSnapshot() *Stats {
	return g.stats
}
