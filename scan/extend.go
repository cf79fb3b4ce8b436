package scan

import "github.com/grailbio/crispr/holder"

// extendPreRepeat grows h's repeat boundary symmetrically by per-column
// majority voting across every accumulated interval pair. It mutates
// h.RepeatLen and every pair in h.StartStops, and returns the final
// repeatLen.
//
// trimConfidence sets the voting cutoff, max(2, floor(trimConfidence*n)) for
// n included intervals; a column extends the boundary only when some base's
// count exceeds that cutoff. minSpacerLength and
// seedWindowLength are the configured lowSpacer and searchWindowLen.
func extendPreRepeat(h *holder.ReadHolder, trimConfidence float64, minSpacerLength, seedWindowLength int) int {
	numRepeats := h.NumRepeats()
	h.RepeatLen = seedWindowLength
	cutoff := votingCutoff(trimConfidence, numRepeats)

	firstStart := h.FirstRepeatStart()
	lastStart := h.LastRepeatStart()

	shortestSpacing := h.StartStops[2] - h.StartStops[0]
	endIndex := len(h.StartStops)
	for i := 4; i < endIndex; i += 2 {
		if spacing := h.StartStops[i] - h.StartStops[i-2]; spacing < shortestSpacing {
			shortestSpacing = spacing
		}
	}

	rightExtLen := 0
	maxRightExt := shortestSpacing - minSpacerLength

	drIndexEnd := endIndex
	distToEnd := len(h.Seq) - lastStart - 1
	if distToEnd < maxRightExt {
		drIndexEnd -= 2
		cutoff = votingCutoff(trimConfidence, numRepeats-1)
	}

	for maxRightExt > 0 {
		var counts [4]int
		aborted := false
		for k := 0; k < drIndexEnd; k += 2 {
			idx := h.StartStops[k] + h.RepeatLen
			if idx >= len(h.Seq) {
				aborted = true
				break
			}
			tallyBase(&counts, h.Seq[idx])
		}
		if aborted || !anyExceeds(counts, cutoff) {
			break
		}
		h.RepeatLen++
		maxRightExt--
		rightExtLen++
	}

	leftExtLen := 0
	testForNegative := shortestSpacing - minSpacerLength - h.RepeatLen
	maxLeftExt := 0
	if testForNegative >= 0 {
		maxLeftExt = testForNegative
	}

	drIndexStart := 0
	if maxLeftExt > firstStart {
		drIndexStart = 2
		cutoff = votingCutoff(trimConfidence, numRepeats-1)
	}

	for leftExtLen < maxLeftExt {
		var counts [4]int
		for k := drIndexStart; k < endIndex; k += 2 {
			idx := h.StartStops[k] - leftExtLen - 1
			tallyBase(&counts, h.Seq[idx])
		}
		if !anyExceeds(counts, cutoff) {
			break
		}
		h.RepeatLen++
		leftExtLen++
	}

	for i := 0; i < len(h.StartStops); i += 2 {
		if h.StartStops[i] < leftExtLen {
			h.StartStops[i] = 0
		} else {
			h.StartStops[i] -= leftExtLen
		}
		h.StartStops[i+1] += rightExtLen
	}

	return h.RepeatLen
}

func votingCutoff(trimConfidence float64, n int) int {
	cutoff := int(trimConfidence * float64(n))
	if cutoff < 2 {
		cutoff = 2
	}
	return cutoff
}

// tallyBase increments the A, C, G, or T bucket of counts for base c; any
// other byte (N, lowercase, etc.) is not tallied.
func tallyBase(counts *[4]int, c byte) {
	switch c {
	case 'A':
		counts[0]++
	case 'C':
		counts[1]++
	case 'G':
		counts[2]++
	case 'T':
		counts[3]++
	}
}

// anyExceeds reports whether any bucket, checked in A, C, G, T order for
// determinism, exceeds cutoff.
func anyExceeds(counts [4]int, cutoff int) bool {
	for _, n := range counts {
		if n > cutoff {
			return true
		}
	}
	return false
}
