package biosimd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "ACGT", ReverseComplement("ACGT"))
	assert.Equal(t, "GATC", ReverseComplement("GATC"))
	assert.Equal(t, "N", ReverseComplement("N"))
	assert.Equal(t, "", ReverseComplement(""))
}

func TestReverseComplementInplace(t *testing.T) {
	b := []byte("ATCGATCG")
	ReverseComplementInplace(b)
	assert.Equal(t, "CGATCGAT", string(b))
}

func TestBaseCounts(t *testing.T) {
	assert.Equal(t, [5]int{2, 3, 1, 1, 0}, BaseCounts("AACCCGT"))
	assert.Equal(t, [5]int{3, 0, 0, 0, 2}, BaseCounts("AAANN"))
}

func TestHomopolymerRoundTrip(t *testing.T) {
	for _, seq := range []string{"AAAAACGGGGT", "ACGT", "", "A", "AAAA", "ACGTACGT"} {
		encoded, codec := Encode(seq)
		assert.Equal(t, seq, codec.Decode(encoded))
	}
}

func TestHomopolymerTranslate(t *testing.T) {
	// AAAAA CGGGG T -> runs: A(5) C(1) G(4) T(1)
	seq := "AAAAACGGGGT"
	encoded, codec := Encode(seq)
	assert.Equal(t, "ACGT", encoded)

	ds, de := codec.Translate(0, 1) // the "A" run
	assert.Equal(t, 0, ds)
	assert.Equal(t, 5, de)

	ds, de = codec.Translate(2, 3) // the "G" run
	assert.Equal(t, 6, ds)
	assert.Equal(t, 10, de)

	assert.Equal(t, len(seq), codec.DecodedLen())
}
