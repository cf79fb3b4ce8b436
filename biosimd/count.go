package biosimd

// baseIndex maps A/C/G/T to {0,1,2,3} and everything else (including N) to 4.
var baseIndex [256]uint8

func init() {
	for i := range baseIndex {
		baseIndex[i] = 4
	}
	baseIndex['A'], baseIndex['a'] = 0, 0
	baseIndex['C'], baseIndex['c'] = 1, 1
	baseIndex['G'], baseIndex['g'] = 2, 2
	baseIndex['T'], baseIndex['t'] = 3, 3
}

// BaseCounts tallies the occurrences of A, C, G, T, and N|other in seq, in
// that index order.
func BaseCounts(seq string) [5]int {
	var counts [5]int
	for i := 0; i < len(seq); i++ {
		counts[baseIndex[seq[i]]]++
	}
	return counts
}
