// Package qc implements the quality-control filter that separates credible
// CRISPR repeat candidates from low-complexity or spuriously similar
// spacer/repeat patterns before publication.
package qc

import (
	"github.com/grailbio/crispr/biosimd"
	"github.com/grailbio/crispr/holder"
	"github.com/grailbio/crispr/match"
)

// Thresholds holds the subset of crispr.Config the QC filter consults.
type Thresholds struct {
	MaxSimilarity          float64
	SpacerToSpacerDelta    float64
	SpacerToRepeatDelta    float64
	LowComplexityThreshold float64
}

// Reason names why Check rejected a candidate. The zero value, ReasonNone,
// means the candidate passed.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonLowComplexity
	ReasonSimilarity
	ReasonLengthHeterogeneity
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonLowComplexity:
		return "low_complexity"
	case ReasonSimilarity:
		return "similarity"
	case ReasonLengthHeterogeneity:
		return "length_heterogeneity"
	default:
		return "unknown"
	}
}

// Check runs every QC rejection rule against h's first repeat and its
// spacers, using t's thresholds, and returns ReasonNone if the candidate
// should be published.
func Check(h *holder.ReadHolder, t Thresholds) Reason {
	repeat := h.RepeatString(0)
	if isLowComplexity(repeat, t.LowComplexityThreshold) {
		return ReasonLowComplexity
	}

	spacers := h.AllSpacerStrings()
	switch len(spacers) {
	case 0:
		// A single repeat occurrence has no spacer to compare against; the
		// low-complexity check above is the only applicable rule.
	case 1:
		if match.Similarity(repeat, spacers[0]) > t.MaxSimilarity {
			return ReasonSimilarity
		}
		if float64(absInt(len(repeat)-len(spacers[0]))) > t.SpacerToRepeatDelta {
			return ReasonLengthHeterogeneity
		}
	default:
		if reason := checkSimilarity(repeat, spacers, t); reason != ReasonNone {
			return reason
		}
		if reason := checkLengthHeterogeneity(repeat, spacers, t); reason != ReasonNone {
			return reason
		}
	}
	return ReasonNone
}

func checkSimilarity(repeat string, spacers []string, t Thresholds) Reason {
	var spacerToSpacerSum, repeatToSpacerSum float64
	for i := 0; i < len(spacers)-1; i++ {
		spacerToSpacerSum += match.Similarity(spacers[i], spacers[i+1])
	}
	for _, s := range spacers {
		repeatToSpacerSum += match.Similarity(repeat, s)
	}
	if spacerToSpacerSum/float64(len(spacers)-1) > t.MaxSimilarity {
		return ReasonSimilarity
	}
	if repeatToSpacerSum/float64(len(spacers)) > t.MaxSimilarity {
		return ReasonSimilarity
	}
	return ReasonNone
}

func checkLengthHeterogeneity(repeat string, spacers []string, t Thresholds) Reason {
	spacerToSpacerDiff := 0
	for i := 0; i < len(spacers)-1; i++ {
		spacerToSpacerDiff += absInt(len(spacers[i]) - len(spacers[i+1]))
	}
	if float64(spacerToSpacerDiff) > float64(len(spacers))*t.SpacerToSpacerDelta {
		return ReasonLengthHeterogeneity
	}

	repeatToSpacerDiff := 0
	for _, s := range spacers {
		repeatToSpacerDiff += absInt(len(repeat) - len(s))
	}
	if float64(repeatToSpacerDiff) > float64(len(spacers))*t.SpacerToRepeatDelta {
		return ReasonLengthHeterogeneity
	}
	return ReasonNone
}

// isLowComplexity reports whether any single base (Ns counted alongside
// their own bucket) occurs in seq more often than threshold * len(seq).
func isLowComplexity(seq string, threshold float64) bool {
	counts := biosimd.BaseCounts(seq)
	cutoff := threshold * float64(len(seq))
	for _, n := range counts {
		if float64(n) > cutoff {
			return true
		}
	}
	return false
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
