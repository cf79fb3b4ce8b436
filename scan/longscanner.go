package scan

import (
	"github.com/grailbio/crispr/holder"
	"github.com/grailbio/crispr/index"
	"github.com/grailbio/crispr/match"
	"github.com/grailbio/crispr/qc"
	"github.com/grailbio/crispr/seqio"
)

// Outcome reports what became of one record passed to a scanner.
type Outcome struct {
	// SkippedShort is true if the record was too short to search at all.
	SkippedShort bool
	// Published is true if a candidate was accepted and inserted into the
	// ReadIndex.
	Published bool
	// Rejected is the QC reason a found candidate was rejected for.
	// ReasonNone if no candidate was rejected (either none was found, or one
	// was published).
	Rejected qc.Reason
}

// ScanLong runs the LongScanner algorithm (§4.2) against one record: it
// seeds with a small window, scans right at roughly the seed spacing to
// accumulate further repeat occurrences, and once enough have accumulated,
// grows the repeat boundary by consensus (extendPreRepeat) and runs QC. On
// success the ReadHolder is published into idx and its canonical repeat
// recorded into patterns.
func ScanLong(rec seqio.Record, opts Options, idx *index.ReadIndex, patterns *index.PatternSet, seen *index.SeenIDs) Outcome {
	h := holder.New(rec.ID, rec.Seq)
	h.Comment = rec.Comment
	h.Quality = rec.Quality
	if opts.RemoveHomopolymers {
		h.EncodeHomopolymers()
	}

	seq := h.Seq
	L := len(seq)
	W := opts.SearchWindowLen

	skips := opts.LowDR - (2*W - 1)
	if skips < 1 {
		skips = 1
	}
	searchEnd := L - opts.HighDR - opts.HighSpacer - W - 1
	if searchEnd < 0 {
		return Outcome{SkippedShort: true}
	}

	var outcome Outcome
	for j := 0; j <= searchEnd; j += skips {
		beginSearch := j + opts.LowDR + opts.LowSpacer
		endSearch := j + opts.HighDR + opts.HighSpacer + W
		if endSearch >= L {
			endSearch = L - 1
		}
		if endSearch < beginSearch {
			endSearch = beginSearch
		}

		text := seq[beginSearch:endSearch]
		pattern := seq[j : j+W]
		p := match.Find(text, pattern)
		if p >= 0 {
			h.AddInterval(j, j+W)
			foundStart := beginSearch + p
			h.AddInterval(foundStart, foundStart+W)
			scanRight(h, pattern, opts.LowSpacer, 24)
		}

		if h.NumRepeats() > opts.MinNumRepeats {
			actualRepeatLength := extendPreRepeat(h, opts.TrimConfidence, opts.LowSpacer, W)
			if actualRepeatLength >= opts.LowDR && actualRepeatLength <= opts.HighDR {
				if opts.RemoveHomopolymers {
					h.Decode()
				}
				h.DropPartials()
				reason := qc.Check(h, opts.QC)
				if reason == qc.ReasonNone {
					publish(h, idx, patterns, seen)
					return Outcome{Published: true}
				}
				outcome.Rejected = reason
			}
			j = h.Back() - 1
		}
		h.ClearStartStops()
	}
	return outcome
}

// publish canonicalizes and inserts h into idx, records its canonical repeat
// into patterns for use by the Singleton Recruiter, and marks h's id seen so
// phase 2 does not recruit it a second time.
func publish(h *holder.ReadHolder, idx *index.ReadIndex, patterns *index.PatternSet, seen *index.SeenIDs) string {
	idx.Insert(h)
	canonical := h.RepeatString(0)
	patterns.Add(canonical)
	seen.Add(h.ID)
	return canonical
}
