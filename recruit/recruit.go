// Package recruit implements the Singleton Recruiter, the phase 2 pass
// described in §4.5: once phase 1 has scanned every record and frozen the
// PatternSet, the recruiter re-scans the input a second time, using the
// Wu-Manber-style match.Searcher to find any not-yet-seen record containing
// one of the already-known repeat patterns, with no consensus extension and
// no QC. Only the leftmost occurrence is recorded; the number of copies in
// the record is not checked.
package recruit

import (
	"github.com/grailbio/crispr/holder"
	"github.com/grailbio/crispr/index"
	"github.com/grailbio/crispr/match"
	"github.com/grailbio/crispr/seqio"
)

// Recruiter holds the frozen multi-pattern searcher and the shared
// cross-phase state a recruitment pass consults and updates.
type Recruiter struct {
	searcher *match.Searcher
	idx      *index.ReadIndex
	seen     *index.SeenIDs
}

// New builds a Recruiter from patterns snapshotted at the end of phase 1.
// patterns must be non-empty: an empty PatternSet means phase 1 found
// nothing, and the caller should skip phase 2 entirely rather than call New.
func New(patterns []string, idx *index.ReadIndex, seen *index.SeenIDs) *Recruiter {
	return &Recruiter{searcher: match.NewSearcher(patterns), idx: idx, seen: seen}
}

// Outcome reports what became of one record passed to Recruit.
type Outcome struct {
	// Recruited is true if rec matched a known pattern and was inserted into
	// the ReadIndex.
	Recruited bool
	// AlreadySeen is true if rec's id had already been recorded by phase 1 or
	// an earlier recruitment, so it was skipped without searching.
	AlreadySeen bool
}

// Recruit searches rec for the leftmost occurrence of any known pattern. A
// hit is recorded as a single-interval ReadHolder and inserted into the
// ReadIndex unconditionally: phase 2 is exact-match authority, with no QC
// and no boundary extension.
func (r *Recruiter) Recruit(rec seqio.Record) Outcome {
	if r.seen.Contains(rec.ID) {
		return Outcome{AlreadySeen: true}
	}

	pattern, start, found := r.searcher.Search(rec.Seq)
	if !found {
		return Outcome{}
	}

	end := start + len(pattern)
	if end >= len(rec.Seq) {
		end = len(rec.Seq) - 1
	}

	h := holder.New(rec.ID, rec.Seq)
	h.Comment = rec.Comment
	h.Quality = rec.Quality
	h.AddInterval(start, end)

	r.idx.Insert(h)
	r.seen.Add(rec.ID)
	return Outcome{Recruited: true}
}
