package scan

import (
	"github.com/grailbio/crispr/holder"
	"github.com/grailbio/crispr/index"
	"github.com/grailbio/crispr/match"
	"github.com/grailbio/crispr/qc"
	"github.com/grailbio/crispr/seqio"
)

// ScanShort runs the ShortScanner algorithm (§4.3) against one record: it
// looks for exactly one repeat pair of length opts.LowDR, never invoking
// the consensus extension algorithm LongScanner uses.
func ScanShort(rec seqio.Record, opts Options, idx *index.ReadIndex, patterns *index.PatternSet, seen *index.SeenIDs) Outcome {
	h := holder.New(rec.ID, rec.Seq)
	h.Comment = rec.Comment
	h.Quality = rec.Quality
	if opts.RemoveHomopolymers {
		h.EncodeHomopolymers()
	}

	seq := h.Seq
	L := len(seq)
	if L < opts.LowDR+opts.LowSpacer+opts.LowDR+1 {
		return Outcome{SkippedShort: true}
	}

	var outcome Outcome
	for firstStart := 0; firstStart+opts.LowDR+opts.LowSpacer < L-opts.LowDR-1; firstStart++ {
		searchBegin := firstStart + opts.LowDR + opts.LowSpacer

		pattern := seq[firstStart : firstStart+opts.LowDR]
		q := match.Find(seq[searchBegin:], pattern)
		if q < 0 {
			continue
		}
		secondStart := searchBegin + q

		h.AddInterval(firstStart, firstStart+opts.LowDR)
		h.AddInterval(secondStart, secondStart+opts.LowDR)
		h.RepeatLen = opts.LowDR

		avg := h.AverageSpacerLength()
		if h.RepeatLen <= opts.HighDR && avg >= float64(opts.LowSpacer) && avg <= float64(opts.HighSpacer) {
			if opts.RemoveHomopolymers {
				h.Decode()
			}
			reason := qc.Check(h, opts.QC)
			if reason == qc.ReasonNone {
				publish(h, idx, patterns, seen)
				return Outcome{Published: true}
			}
			outcome.Rejected = reason
		}
		h.ClearStartStops()
		firstStart = secondStart + opts.LowDR - 1
	}
	return outcome
}
