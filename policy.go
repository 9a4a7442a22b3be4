package gc

// PolicyKind selects which victim-scoring policy a GC uses. It is chosen
// once, in New, and never switched mid-run - matching the firmware's
// build-time policy choice, just expressed as a constructor argument
// instead of a build tag so one test binary can exercise all three.
type PolicyKind int

const (
	// Greedy pops the head of the highest-indexed non-empty bucket.
	// O(1) selection, no per-candidate arithmetic; ties break FIFO
	// (oldest-in-bucket wins) because it always takes the head.
	Greedy PolicyKind = iota

	// CostBenefit scans every non-empty bucket and keeps the strictly
	// highest costBenefitScore, trading reclaim yield against migration
	// cost and how long ago the block was last erased.
	CostBenefit

	// CAT (Cost-Age-Tradeoff) is Cost-Benefit's scan with catScore,
	// additionally penalizing high erase counts to spread wear.
	CAT
)

// policy is the common victim-selection contract all three scoring
// strategies implement. It never mutates the index as a side effect of
// scoring - only the final selected victim is detached.
type policy interface {
	selectVictim(g *GC, die int) (BlockNo, error)
}

func newPolicy(kind PolicyKind) policy {
	switch kind {
	case Greedy:
		return greedyPolicy{}
	case CostBenefit:
		return scanPolicy{score: costBenefitScoreFn}
	case CAT:
		return scanPolicy{score: catScoreFn}
	default:
		panic("gc: unknown policy kind")
	}
}

// greedyPolicy implements §4.4's Greedy selection: find the fullest
// non-empty bucket and pop its head directly, avoiding the general
// detach() bucket lookup since the bucket is already known.
type greedyPolicy struct{}

func (greedyPolicy) selectVictim(g *GC, die int) (BlockNo, error) {
	bucket := g.index.highestNonEmpty(die)
	if bucket < 0 {
		return BlockFail, ErrNoVictimAvailable
	}
	return g.index.popHead(die, bucket), nil
}

// scoreFn computes a policy's integer score for one candidate block.
type scoreFn func(g *GC, die int, block BlockNo, invalidCount uint32) uint32

func costBenefitScoreFn(g *GC, die int, block BlockNo, invalidCount uint32) uint32 {
	ageTicks := g.ages.eraseAge(die, block, g.clock.now())
	return costBenefitScore(invalidCount, uint32(g.config.PagesPerBlock), ageTicks)
}

func catScoreFn(g *GC, die int, block BlockNo, invalidCount uint32) uint32 {
	ageTicks := g.ages.invalidAge(die, block, g.clock.now())
	eraseCount := g.blocks.at(die, block).EraseCount
	return catScore(invalidCount, uint32(g.config.PagesPerBlock), ageTicks, eraseCount)
}

// scanPolicy implements Cost-Benefit and CAT selection: both walk every
// non-empty bucket in descending order and keep the strictly-highest
// scoring candidate. Ties (strict '>' never triggers) resolve to whichever
// candidate the descending scan reached first, i.e. the higher invalid
// count, then earlier list position within a bucket - exactly the
// iteration order iterateCandidatesDescending produces.
type scanPolicy struct {
	score scoreFn
}

func (p scanPolicy) selectVictim(g *GC, die int) (BlockNo, error) {
	bestBlock := BlockFail
	var bestScore uint32

	g.index.iterateCandidatesDescending(die, func(block BlockNo, count uint32) {
		s := p.score(g, die, block, count)
		// The first candidate encountered always becomes the initial
		// best even at score 0, so an all-zero-scoring die still yields
		// a victim instead of incorrectly reporting failure.
		if bestBlock == BlockFail || s > bestScore {
			bestScore = s
			bestBlock = block
		}
	})

	if bestBlock == BlockFail {
		return BlockFail, ErrNoVictimAvailable
	}
	g.index.detach(die, bestBlock)
	return bestBlock, nil
}
