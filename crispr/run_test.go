package crispr_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/crispr"
	"github.com/grailbio/crispr/biosimd"
	"github.com/grailbio/crispr/holder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallConfig uses deliberately tiny bounds so end-to-end scenarios can be
// built from short, hand-verifiable sequences instead of DefaultConfig's
// full-scale crass-derived thresholds.
func smallConfig() crispr.Config {
	return crispr.Config{
		LowDR:                  10,
		HighDR:                 20,
		LowSpacer:              5,
		HighSpacer:             15,
		SearchWindowLen:        4,
		MinNumRepeats:          2,
		TrimConfidence:         0.75,
		MaxSimilarity:          0.75,
		SpacerToSpacerDelta:    4,
		SpacerToRepeatDelta:    4,
		LowComplexityThreshold: 0.75,
		RemoveHomopolymers:     false,
		MaxReadsForDecision:    1000,
	}
}

func writeFastq(t *testing.T, dir string, records map[string]string) string {
	t.Helper()
	var b strings.Builder
	for id, seq := range records {
		b.WriteString("@")
		b.WriteString(id)
		b.WriteString("\n")
		b.WriteString(seq)
		b.WriteString("\n+\n")
		b.WriteString(strings.Repeat("I", len(seq)))
		b.WriteString("\n")
	}
	path := filepath.Join(dir, "reads.fastq")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestRunPublishesShortReadWithTwoRepeatCopies(t *testing.T) {
	repeat := "ACGTACGTAC" // 10bp
	spacer := "TTTTTTTT"   // 8bp
	path := writeFastq(t, t.TempDir(), map[string]string{"r1": repeat + spacer + repeat})

	result, err := crispr.Run(context.Background(), path, smallConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Published)
	assert.Equal(t, 1, result.Index.Len())
}

func TestRunRejectsLowComplexityRepeat(t *testing.T) {
	repeat := "AAAAAAAAAA" // 10bp, fails the low-complexity cap
	spacer := "TTTTTTTT"
	path := writeFastq(t, t.TempDir(), map[string]string{"r1": repeat + spacer + repeat})

	result, err := crispr.Run(context.Background(), path, smallConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.Published)
	assert.Equal(t, 1, result.Stats.RejectedLowComplexity)
	assert.Equal(t, 0, result.Index.Len())
}

// repeatGTTT is the 29bp repeat used by spec.md §8 scenarios 1 and 2.
const repeatGTTT = "GTTTCCGTCCCCTCATGGGGGACGGAAAC"

// TestRunRejectsThreeCopyReadWithIdenticalSpacers is spec.md §8 scenario 1:
// a three-copy long read whose two spacers are identical is found and fully
// extended by LongScanner, but rejected by QC's spacer-similarity check.
func TestRunRejectsThreeCopyReadWithIdenticalSpacers(t *testing.T) {
	prefix := strings.Repeat("N", 20)
	spacer := strings.Repeat("A", 30)
	seq := prefix + repeatGTTT + spacer + repeatGTTT + spacer + repeatGTTT + prefix
	path := writeFastq(t, t.TempDir(), map[string]string{"r1": seq})

	result, err := crispr.Run(context.Background(), path, crispr.DefaultConfig)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.Published)
	assert.Equal(t, 1, result.Stats.RejectedSimilarity)
	assert.Equal(t, 0, result.Index.Len())
}

// TestRunPublishesThreeCopyReadWithDistinctSpacers is spec.md §8 scenario 2:
// the same repeat recurring three times with two distinct spacers is
// published by LongScanner with a 6-entry interval list, oriented to its
// canonical (lexicographically smaller of itself and its reverse
// complement) form.
func TestRunPublishesThreeCopyReadWithDistinctSpacers(t *testing.T) {
	prefix := strings.Repeat("N", 20)
	spacer1 := strings.Repeat("ACGT", 8)
	spacer2 := strings.Repeat("CTAG", 8)
	seq := prefix + repeatGTTT + spacer1 + repeatGTTT + spacer2 + repeatGTTT + prefix
	path := writeFastq(t, t.TempDir(), map[string]string{"r1": seq})

	result, err := crispr.Run(context.Background(), path, crispr.DefaultConfig)
	require.NoError(t, err)

	require.Equal(t, 1, result.Stats.Published)
	require.Equal(t, 1, result.Index.Len())

	rc := biosimd.ReverseComplement(repeatGTTT)
	canonical := repeatGTTT
	if rc < canonical {
		canonical = rc
	}

	found := false
	result.Index.Each(func(repeat string, reads []*holder.ReadHolder) {
		if repeat != canonical {
			return
		}
		found = true
		require.Len(t, reads, 1)
		assert.Equal(t, 3, reads[0].NumRepeats())
		assert.Len(t, reads[0].StartStops, 6)
	})
	assert.True(t, found, "canonical repeat %q not published", canonical)
}

// TestRunPublishesHomopolymerSpanningRepeatWithDecodedCoordinates is spec.md
// §8 scenario 4: with RemoveHomopolymers set, a repeat whose raw sequence
// contains a run of identical bases (collapsed to one base by the scanner's
// internal homopolymer encoding) still publishes, and the coordinates
// recorded against it are translated back to the raw, uncollapsed read.
func TestRunPublishesHomopolymerSpanningRepeatWithDecodedCoordinates(t *testing.T) {
	// "ACGTACGTCA" with its fifth base ('A') expanded into a 5-base run;
	// collapses back to the same 10 bases once homopolymers are removed.
	repeat := "ACGT" + strings.Repeat("A", 5) + "CGTCA"
	spacer := "TCTCTCTCTC" // no repeated adjacent bases: untouched by encoding
	seq := repeat + spacer + repeat
	path := writeFastq(t, t.TempDir(), map[string]string{"r1": seq})

	cfg := smallConfig()
	cfg.RemoveHomopolymers = true

	result, err := crispr.Run(context.Background(), path, cfg)
	require.NoError(t, err)

	require.Equal(t, 1, result.Stats.Published)
	require.Equal(t, 1, result.Index.Len())

	result.Index.Each(func(canonical string, reads []*holder.ReadHolder) {
		require.Len(t, reads, 1)
		h := reads[0]
		assert.Equal(t, repeat, h.RepeatString(0))
		assert.Equal(t, []int{0, len(repeat), len(repeat) + len(spacer), len(seq)}, h.StartStops)
	})
}

func TestRunRecruitsSingletonInPhase2(t *testing.T) {
	repeat := "ACGTACGTAC" // 10bp
	spacer := "TTTTTTTT"   // 8bp
	path := writeFastq(t, t.TempDir(), map[string]string{
		"r1": repeat + spacer + repeat,    // two copies: published by ShortScanner in phase 1
		"r2": "GGGG" + repeat + strings.Repeat("C", 12), // exactly one copy: left for phase 2
	})

	result, err := crispr.Run(context.Background(), path, smallConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Published)
	assert.Equal(t, 1, result.Stats.SingletonsRecruited)
	assert.Equal(t, 2, result.Index.Len())
}
