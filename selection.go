package evotune

import "math"

// minEliteCount is the floor on the breeding pool size: reproduction
// samples two distinct parents, so selection must yield at least two
// genomes no matter how small EliteFraction*N comes out.
const minEliteCount = 2

// EliteCount returns ceil(fraction*n) floored at minEliteCount and
// capped at the population size.
func EliteCount(n int, fraction float64) int {
	k := int(math.Ceil(fraction * float64(n)))
	if k < minEliteCount {
		k = minEliteCount
	}
	if k > n {
		k = n
	}
	return k
}

// selectElite returns the top slice of an already-ranked population. The
// returned genomes are the caller's to keep: they are cloned so later
// population replacement cannot touch them.
func selectElite(ranked []Genome, fraction float64) []Genome {
	k := EliteCount(len(ranked), fraction)
	elite := make([]Genome, k)
	for i := 0; i < k; i++ {
		elite[i] = ranked[i].Clone()
	}
	return elite
}
