// Package holder implements ReadHolder, the in-flight representation of a
// candidate read as it passes through the scanners, QC filter, and
// canonicalization step described in the detection pipeline.
package holder

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/crispr/biosimd"
)

// ReadHolder is the in-flight representation of a candidate read. It is
// mutated only while its owning scanner processes the record it came from;
// once published into a ReadIndex it is treated as immutable.
type ReadHolder struct {
	ID      string
	Comment string
	Quality string

	Seq string

	// WasLowLexi records whether the repeat's original (pre-canonicalization)
	// orientation was already the lexicographically smaller of itself and its
	// reverse complement.
	WasLowLexi bool

	// StartStops is an even-length, non-decreasing, non-overlapping list of
	// [start,end) pair boundaries, one pair per accepted repeat occurrence.
	StartStops []int

	// RepeatLen is the current estimate of the shared length of every
	// interval in StartStops.
	RepeatLen int

	codec *biosimd.HomopolymerCodec
}

// New creates a ReadHolder for a freshly read record.
func New(id, seq string) *ReadHolder {
	return &ReadHolder{ID: id, Seq: seq}
}

// NumRepeats returns the number of accepted repeat occurrences (half the
// length of StartStops).
func (r *ReadHolder) NumRepeats() int { return len(r.StartStops) / 2 }

// NumSpacers returns the number of spacers between accepted repeats.
func (r *ReadHolder) NumSpacers() int {
	if n := r.NumRepeats(); n > 0 {
		return n - 1
	}
	return 0
}

// AddInterval appends a [start,end) pair to StartStops.
func (r *ReadHolder) AddInterval(start, end int) {
	r.StartStops = append(r.StartStops, start, end)
}

// ClearStartStops discards all accepted intervals, e.g. after a candidate
// repeat fails QC and the scanner resumes searching.
func (r *ReadHolder) ClearStartStops() {
	r.StartStops = r.StartStops[:0]
}

// Start returns the start coordinate of the i'th repeat pair.
func (r *ReadHolder) Start(i int) int { return r.StartStops[2*i] }

// End returns the end coordinate of the i'th repeat pair.
func (r *ReadHolder) End(i int) int { return r.StartStops[2*i+1] }

// FirstRepeatStart returns the start coordinate of the first repeat.
func (r *ReadHolder) FirstRepeatStart() int { return r.Start(0) }

// LastRepeatStart returns the start coordinate of the last repeat.
func (r *ReadHolder) LastRepeatStart() int { return r.Start(r.NumRepeats() - 1) }

// Back returns the last coordinate recorded in StartStops; scanners resume
// searching just before this point after a rejected candidate.
func (r *ReadHolder) Back() int { return r.StartStops[len(r.StartStops)-1] }

// IncrementRepeatLen grows RepeatLen by one base, used by the consensus
// extension algorithm.
func (r *ReadHolder) IncrementRepeatLen() { r.RepeatLen++ }

// RepeatString returns the substring spanned by the i'th repeat pair.
func (r *ReadHolder) RepeatString(i int) string { return r.Seq[r.Start(i):r.End(i)] }

// SpacerString returns the substring between the i'th and (i+1)'th repeats.
func (r *ReadHolder) SpacerString(i int) string { return r.Seq[r.End(i):r.Start(i+1)] }

// AllSpacerStrings returns every spacer, in read order.
func (r *ReadHolder) AllSpacerStrings() []string {
	n := r.NumSpacers()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = r.SpacerString(i)
	}
	return out
}

// AverageSpacerLength returns the mean spacer length, or 0 if there are no
// spacers.
func (r *ReadHolder) AverageSpacerLength() float64 {
	n := r.NumSpacers()
	if n == 0 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += len(r.SpacerString(i))
	}
	return float64(total) / float64(n)
}

// DropPartials removes the first and/or last repeat pair if the extension
// algorithm could not fully grow it because it abuts a read boundary,
// leaving a pair shorter than RepeatLen.
func (r *ReadHolder) DropPartials() {
	if r.NumRepeats() == 0 {
		return
	}
	if r.Start(0) == 0 && r.End(0)-r.Start(0) < r.RepeatLen {
		r.StartStops = r.StartStops[2:]
	}
	if r.NumRepeats() == 0 {
		return
	}
	last := r.NumRepeats() - 1
	if r.End(last) == len(r.Seq) && r.End(last)-r.Start(last) < r.RepeatLen {
		r.StartStops = r.StartStops[:len(r.StartStops)-2]
	}
}

// EncodeHomopolymers run-length collapses Seq, retaining the codec needed
// to decode coordinates computed against the collapsed sequence.
func (r *ReadHolder) EncodeHomopolymers() {
	encoded, codec := biosimd.Encode(r.Seq)
	r.Seq = encoded
	r.codec = codec
}

// Encoded reports whether EncodeHomopolymers has been called.
func (r *ReadHolder) Encoded() bool { return r.codec != nil }

// Decode restores Seq to its original, uncollapsed form and translates
// every interval in StartStops from encoded to decoded coordinates. It is a
// no-op if EncodeHomopolymers was never called.
func (r *ReadHolder) Decode() {
	if r.codec == nil {
		return
	}
	decodedStartStops := make([]int, len(r.StartStops))
	for i := 0; i < len(r.StartStops); i += 2 {
		s, e := r.codec.Translate(r.StartStops[i], r.StartStops[i+1])
		decodedStartStops[i], decodedStartStops[i+1] = s, e
	}
	r.Seq = r.codec.Decode(r.Seq)
	r.StartStops = decodedStartStops
	r.codec = nil
}

// Canonicalize orients the read so the first repeat's substring equals its
// canonical form: the lexicographically smaller of itself and its reverse
// complement. If the read must be flipped, the whole sequence (and quality,
// if present) is reverse complemented/reversed and every interval is
// remapped accordingly, and the pair order is reversed to keep StartStops
// in non-decreasing start order.
func (r *ReadHolder) Canonicalize() {
	if r.NumRepeats() == 0 {
		log.Fatalf("holder: Canonicalize called on a read with no accepted repeats: %s", r.ID)
	}
	dr := r.RepeatString(0)
	rc := biosimd.ReverseComplement(dr)
	if dr <= rc {
		r.WasLowLexi = true
		return
	}
	r.WasLowLexi = false
	r.flip()
}

func (r *ReadHolder) flip() {
	n := len(r.Seq)
	r.Seq = biosimd.ReverseComplement(r.Seq)
	if r.Quality != "" {
		r.Quality = reverseString(r.Quality)
	}

	numPairs := r.NumRepeats()
	flipped := make([]int, len(r.StartStops))
	for i := 0; i < numPairs; i++ {
		oldStart, oldEnd := r.Start(i), r.End(i)
		newStart, newEnd := n-oldEnd, n-oldStart
		// Pair i, read from the end, becomes pair (numPairs-1-i) in the
		// flipped, ascending-start orientation.
		dst := numPairs - 1 - i
		flipped[2*dst], flipped[2*dst+1] = newStart, newEnd
	}
	r.StartStops = flipped
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
