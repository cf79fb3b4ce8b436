// Package crispr implements the detection pipeline: scanner selection over
// an input record stream, the two-phase scan/recruit orchestration, and the
// Config and Stats types that drive and summarize a run.
package crispr

// Config holds every tunable of the detection pipeline. Field names and
// defaults follow crass's option table; see cmd/crispr-find for the flag
// names that set them.
type Config struct {
	// LowDR and HighDR bound the accepted repeat length, inclusive.
	LowDR  int
	HighDR int

	// LowSpacer and HighSpacer bound the accepted spacer length, inclusive.
	LowSpacer  int
	HighSpacer int

	// SearchWindowLen is the seed kmer length LongScanner probes with.
	SearchWindowLen int

	// MinNumRepeats bounds when LongScanner attempts extendPreRepeat: only
	// once it holds more than MinNumRepeats repeat intervals.
	MinNumRepeats int

	// TrimConfidence, in (0,1], sets extendPreRepeat's voting cutoff: a
	// column grows the repeat only when more than max(2,
	// floor(TrimConfidence*n)) of the n included intervals agree on its base.
	TrimConfidence float64

	// MaxSimilarity is the QC filter's similarity rejection threshold.
	MaxSimilarity float64

	// SpacerToSpacerDelta and SpacerToRepeatDelta are the QC filter's
	// per-spacer length-difference tolerances, in bases.
	SpacerToSpacerDelta float64
	SpacerToRepeatDelta float64

	// LowComplexityThreshold is the per-base frequency cap a repeat may not
	// exceed before QC rejects it as low complexity.
	LowComplexityThreshold float64

	// RemoveHomopolymers enables run-length encoding before scanning.
	RemoveHomopolymers bool

	// MaxReadsForDecision caps how many leading records are sampled to
	// decide between LongScanner and ShortScanner.
	MaxReadsForDecision int
}

// DefaultConfig holds the values used throughout the end-to-end scenarios:
// lowDR=23, highDR=47, lowSpacer=26, highSpacer=50, W=8, minNumRepeats=2,
// trimConfidence=0.75, maxSimilarity=0.75, lowComplexityThreshold=0.75.
var DefaultConfig = Config{
	LowDR:                  23,
	HighDR:                 47,
	LowSpacer:              26,
	HighSpacer:             50,
	SearchWindowLen:        8,
	MinNumRepeats:          2,
	TrimConfidence:         0.75,
	MaxSimilarity:          0.75,
	SpacerToSpacerDelta:    4,
	SpacerToRepeatDelta:    4,
	LowComplexityThreshold: 0.75,
	RemoveHomopolymers:     false,
	MaxReadsForDecision:    1000,
}

// UseLongScanner reports whether avgReadLen, the mean read length sampled
// over the first C.MaxReadsForDecision records, selects LongScanner (true)
// or ShortScanner (false).
func (c Config) UseLongScanner(avgReadLen float64) bool {
	return avgReadLen > float64(4*c.LowDR+2*c.LowSpacer)
}
