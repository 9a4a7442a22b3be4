package gc

// All scoring is unsigned integer arithmetic with a 64-bit intermediate
// product, narrowed to 32 bits for the final result. The +1 offsets below
// are mandatory: they guard divide-by-zero and impose a strict ordering
// even when some term is zero. Each divide is also gated by a cheap
// nonzero check on the numerator: Cost-Benefit returns 0 through it
// whenever I is 0, while CAT's +1 offsets keep its numerator nonzero in
// normal use, so there the check only makes the guard explicit.

// costBenefitScore computes (I * (A+1) * P) / (V+1).
//
//	I = invalidSliceCount, V = pagesPerBlock - I
//	A = tick - lastEraseTick (unsigned modular)
//	P = pagesPerBlock
//
// Numerator favors high-yield, long-since-erased blocks; the denominator
// penalizes the cost of migrating whatever is still valid.
func costBenefitScore(invalidCount, pagesPerBlock, ageTicks uint32) uint32 {
	valid := pagesPerBlock - invalidCount
	numerator := uint64(invalidCount) * uint64(ageTicks+1) * uint64(pagesPerBlock)
	if numerator == 0 {
		return 0
	}
	return uint32(numerator / uint64(valid+1))
}

// catScore computes ((I+1) * (A+1)) / ((V+1) * (W+1)).
//
//	I = invalidSliceCount, V = pagesPerBlock - I
//	A = tick - lastInvalidTick (unsigned modular)
//	W = eraseCount
//
// Same yield-vs-cost shape as Cost-Benefit, with an added wear-leveling
// term: at equal (I, V, A), a higher erase count depresses the score so
// colder blocks are preferred.
func catScore(invalidCount, pagesPerBlock, ageTicks, eraseCount uint32) uint32 {
	valid := pagesPerBlock - invalidCount
	numerator := uint64(invalidCount+1) * uint64(ageTicks+1)
	if numerator == 0 {
		return 0
	}
	denominator := uint64(valid+1) * uint64(eraseCount+1)
	return uint32(numerator / denominator)
}
