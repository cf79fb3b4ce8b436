package match

import (
	"github.com/antzucaro/matchr"
	"github.com/grailbio/crispr/util"
)

// Similarity returns a value in [0,1]: 1.0 when a and b are identical, 0.0
// when they are maximally dissimilar, and monotone in edit distance for
// equal-length inputs. It corresponds to crass's
// PatternMatcher::getStringSimilarity, used by the QC filter to compare a
// repeat against its neighboring spacers.
//
// Equal-length inputs are compared by normalized Hamming distance (a fast
// path, since repeat-vs-repeat comparisons are almost always equal length).
// Unequal-length inputs fall back to an edit distance normalized by the
// longer length: the Levenshtein distance of the shared-length prefixes plus
// the length difference, an upper bound on the full Levenshtein distance.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	if len(a) == len(b) {
		mismatches, err := matchr.Hamming(a, b)
		if err != nil {
			// Hamming requires equal lengths, which we've already checked;
			// this should be unreachable.
			panic(err)
		}
		return 1.0 - float64(mismatches)/float64(len(a))
	}

	minLen, maxLen := len(a), len(b)
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}
	// util.Levenshtein requires its two primary arguments to have equal
	// length, so it compares the shared-length prefixes (with empty
	// downstream overhangs), and every base of the longer input's remainder
	// is charged as one insertion.
	dist := util.Levenshtein(a[:minLen], b[:minLen], "", "") + (maxLen - minLen)
	return 1.0 - float64(dist)/float64(maxLen)
}
