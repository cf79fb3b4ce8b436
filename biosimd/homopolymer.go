package biosimd

// HomopolymerCodec run-length-collapses homopolymer runs in a sequence (e.g.
// "AAAAACGGT" -> "ACGT") and retains enough bookkeeping to translate
// coordinates computed against the collapsed sequence back to the original.
//
// Codecs are built once by Encode and are read-only afterward; they are safe
// for concurrent Translate/Decode calls.
type HomopolymerCodec struct {
	runLengths []int // runLengths[i] is the length of the i'th collapsed run.
	prefix     []int // prefix[i] = sum(runLengths[:i]); len(prefix) == len(runLengths)+1.
}

// Encode collapses runs of identical bases in seq into a single base each,
// returning the collapsed sequence and the codec needed to invert the
// transform and translate coordinates.
func Encode(seq string) (encoded string, codec *HomopolymerCodec) {
	if len(seq) == 0 {
		return "", &HomopolymerCodec{prefix: []int{0}}
	}
	buf := make([]byte, 0, len(seq))
	runLengths := make([]int, 0, len(seq))

	runStart := 0
	for i := 1; i <= len(seq); i++ {
		if i < len(seq) && seq[i] == seq[runStart] {
			continue
		}
		buf = append(buf, seq[runStart])
		runLengths = append(runLengths, i-runStart)
		runStart = i
	}

	prefix := make([]int, len(runLengths)+1)
	for i, l := range runLengths {
		prefix[i+1] = prefix[i] + l
	}
	return string(buf), &HomopolymerCodec{runLengths: runLengths, prefix: prefix}
}

// Decode reconstructs the original sequence from its encoded form.
func (c *HomopolymerCodec) Decode(encoded string) string {
	if len(encoded) != len(c.runLengths) {
		panic("biosimd: Decode called with a string not produced by the matching Encode")
	}
	buf := make([]byte, c.prefix[len(c.prefix)-1])
	pos := 0
	for i := 0; i < len(encoded); i++ {
		for j := 0; j < c.runLengths[i]; j++ {
			buf[pos] = encoded[i]
			pos++
		}
	}
	return string(buf)
}

// Translate maps a half-open [start, end) interval in encoded coordinates to
// the corresponding half-open interval in decoded (original) coordinates.
// end may equal len(runLengths) to refer to the sequence end.
func (c *HomopolymerCodec) Translate(start, end int) (decodedStart, decodedEnd int) {
	return c.prefix[start], c.prefix[end]
}

// DecodedLen returns the length of the original, uncollapsed sequence.
func (c *HomopolymerCodec) DecodedLen() int {
	return c.prefix[len(c.prefix)-1]
}
