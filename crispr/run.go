package crispr

import (
	"context"

	"github.com/grailbio/base/log"
	"github.com/grailbio/crispr/index"
	"github.com/grailbio/crispr/qc"
	"github.com/grailbio/crispr/recruit"
	"github.com/grailbio/crispr/scan"
	"github.com/grailbio/crispr/seqio"
	"github.com/pkg/errors"
)

// Result is the outcome of a complete Run: the published ReadIndex and the
// Stats tallied across both phases.
type Result struct {
	Index *index.ReadIndex
	Stats Stats
}

// Run executes the full two-phase pipeline against the FASTA/FASTQ records
// at path: it opens path three times, once each for the LongScanner/
// ShortScanner decision sample, the phase 1 primary scan, and the phase 2
// Singleton Recruiter, mirroring crass's decideWhichSearch / longReadSearch
// (or shortReadSearch) / findSingletons sequence.
func Run(ctx context.Context, path string, cfg Config) (*Result, error) {
	useLong, err := decideScanner(ctx, path, cfg)
	if err != nil {
		return nil, err
	}

	idx := index.NewReadIndex()
	patterns := index.NewPatternSet()
	seen := index.NewSeenIDs()

	phase1, err := runPhase1(ctx, path, cfg, useLong, idx, patterns, seen)
	if err != nil {
		return nil, err
	}

	phase2 := Stats{}
	if patterns.Len() > 0 {
		phase2, err = runPhase2(ctx, path, patterns, idx, seen)
		if err != nil {
			return nil, err
		}
	} else {
		log.Error.Printf("crispr: phase 1 found no patterns, skipping singleton recruitment")
	}

	return &Result{Index: idx, Stats: phase1.Merge(phase2)}, nil
}

// decideScanner samples the first cfg.MaxReadsForDecision records' average
// length to choose between LongScanner and ShortScanner, per §4.1.
func decideScanner(ctx context.Context, path string, cfg Config) (bool, error) {
	src, err := seqio.Open(ctx, path)
	if err != nil {
		return false, errors.Wrapf(err, "crispr: decide scanner")
	}
	defer src.Close(ctx)

	var totalBases, numRecords int
	for numRecords < cfg.MaxReadsForDecision {
		rec, ok, err := src.Next()
		if err != nil {
			return false, errors.Wrap(err, "crispr: decide scanner")
		}
		if !ok {
			break
		}
		totalBases += len(rec.Seq)
		numRecords++
	}
	if numRecords == 0 {
		return false, errors.New("crispr: input has no records")
	}

	avg := float64(totalBases) / float64(numRecords)
	useLong := cfg.UseLongScanner(avg)
	log.Info.Printf("crispr: average read length over %d records is %.1f, using long=%v", numRecords, avg, useLong)
	return useLong, nil
}

func toScanOptions(cfg Config) scan.Options {
	return scan.Options{
		LowDR:              cfg.LowDR,
		HighDR:             cfg.HighDR,
		LowSpacer:          cfg.LowSpacer,
		HighSpacer:         cfg.HighSpacer,
		SearchWindowLen:    cfg.SearchWindowLen,
		MinNumRepeats:      cfg.MinNumRepeats,
		TrimConfidence:     cfg.TrimConfidence,
		RemoveHomopolymers: cfg.RemoveHomopolymers,
		QC: qc.Thresholds{
			MaxSimilarity:          cfg.MaxSimilarity,
			SpacerToSpacerDelta:    cfg.SpacerToSpacerDelta,
			SpacerToRepeatDelta:    cfg.SpacerToRepeatDelta,
			LowComplexityThreshold: cfg.LowComplexityThreshold,
		},
	}
}

// runPhase1 streams path once, running either ScanLong or ScanShort over
// every record, and tallies the Stats the scanners' Outcomes report.
func runPhase1(ctx context.Context, path string, cfg Config, useLong bool, idx *index.ReadIndex, patterns *index.PatternSet, seen *index.SeenIDs) (Stats, error) {
	src, err := seqio.Open(ctx, path)
	if err != nil {
		return Stats{}, errors.Wrap(err, "crispr: phase 1")
	}
	defer src.Close(ctx)

	opts := toScanOptions(cfg)
	var stats Stats
	for {
		rec, ok, err := src.Next()
		if err != nil {
			return stats, errors.Wrap(err, "crispr: phase 1")
		}
		if !ok {
			break
		}
		if len(rec.Seq) == 0 {
			log.Warn.Printf("crispr: %s: empty sequence, skipping", rec.ID)
			stats.RecordsSkippedMalformed++
			continue
		}
		stats.RecordsScanned++

		var outcome scan.Outcome
		if useLong {
			outcome = scan.ScanLong(rec, opts, idx, patterns, seen)
		} else {
			outcome = scan.ScanShort(rec, opts, idx, patterns, seen)
		}
		if outcome.SkippedShort && log.At(log.Debug) {
			log.Debug.Printf("crispr: %s: shorter than the minimum scan window, skipping", rec.ID)
		}
		tallyOutcome(&stats, outcome)
	}
	return stats, nil
}

func tallyOutcome(stats *Stats, outcome scan.Outcome) {
	switch {
	case outcome.SkippedShort:
		stats.RecordsSkippedShort++
	case outcome.Published:
		stats.CandidatesFound++
		stats.Published++
	case outcome.Rejected != qc.ReasonNone:
		stats.CandidatesFound++
		switch outcome.Rejected {
		case qc.ReasonLowComplexity:
			stats.RejectedLowComplexity++
		case qc.ReasonSimilarity:
			stats.RejectedSimilarity++
		case qc.ReasonLengthHeterogeneity:
			stats.RejectedLengthHeterogeneity++
		}
	}
}

// runPhase2 streams path a second time, running the Singleton Recruiter
// over every record not already accounted for by phase 1.
func runPhase2(ctx context.Context, path string, patterns *index.PatternSet, idx *index.ReadIndex, seen *index.SeenIDs) (Stats, error) {
	src, err := seqio.Open(ctx, path)
	if err != nil {
		return Stats{}, errors.Wrap(err, "crispr: phase 2")
	}
	defer src.Close(ctx)

	r := recruit.New(patterns.Snapshot(), idx, seen)
	var stats Stats
	for {
		rec, ok, err := src.Next()
		if err != nil {
			return stats, errors.Wrap(err, "crispr: phase 2")
		}
		if !ok {
			break
		}
		if outcome := r.Recruit(rec); outcome.Recruited {
			stats.SingletonsRecruited++
		}
	}
	log.Info.Printf("crispr: phase 2 recruited %d additional reads", stats.SingletonsRecruited)
	return stats, nil
}
