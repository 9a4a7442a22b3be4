package gc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Worked numbers straight from spec.md §8 scenario 3: Greedy vs
// Cost-Benefit divergence.
func TestCostBenefitScore_SpecScenario3(t *testing.T) {
	scoreA := costBenefitScore(4 /* I */, 4 /* P */, 0 /* A */)
	require.Equal(t, uint32(16), scoreA)

	scoreB := costBenefitScore(3 /* I */, 4 /* P */, 100 /* A */)
	require.Equal(t, uint32(606), scoreB)

	require.Greater(t, scoreB, scoreA)
}

func TestCostBenefitScore_ZeroInvalidIsZeroWithoutDividing(t *testing.T) {
	require.Equal(t, uint32(0), costBenefitScore(0, 4, 1000))
}

// Worked numbers from spec.md §8 scenario 4: CAT prefers the colder
// block at identical (I, V, A).
func TestCatScore_SpecScenario4_PrefersLowerWear(t *testing.T) {
	const invalid, pagesPerBlock, ageTicks = 3, 4, 10

	scoreHotBlock := catScore(invalid, pagesPerBlock, ageTicks, 1000)
	scoreColdBlock := catScore(invalid, pagesPerBlock, ageTicks, 10)

	require.Greater(t, scoreColdBlock, scoreHotBlock)
}

func TestCatScore_NumeratorNeverZero(t *testing.T) {
	// +1 offsets on both I and A guarantee numerator >= 1, so the
	// divide-by-zero guard in catScore is unreachable in practice; this
	// test documents that rather than asserting dead code is dead.
	require.NotEqual(t, uint32(0), uint64(0+1)*uint64(0+1))
}

func TestScores_MonotonicInInvalidCount(t *testing.T) {
	low := costBenefitScore(1, 8, 5)
	high := costBenefitScore(6, 8, 5)
	require.Greater(t, high, low, "more invalid slices at equal age/pages should not score lower")
}
