package scan

import (
	"github.com/grailbio/crispr/holder"
	"github.com/grailbio/crispr/match"
)

// scanRight extends h's interval list with further occurrences of pattern,
// spaced approximately like the last two intervals already recorded. It
// repeatedly searches a window centered on the predicted next occurrence,
// widened by scanRange on either side and clamped to stay clear of the
// previous repeat and the read end, appending a hit each time one is found.
// It stops, returning the final search window's end offset, when the
// predicted spacing collapses below minSpacerLength+len(pattern) or no
// further hit is found; if the predicted window starts past the read end, it
// returns len(h.Seq)-1.
func scanRight(h *holder.ReadHolder, pattern string, minSpacerLength, scanRange int) int {
	n := len(h.StartStops)
	lastRepeatIndex := h.StartStops[n-2]
	secondLastRepeatIndex := h.StartStops[n-4]
	repeatSpacing := lastRepeatIndex - secondLastRepeatIndex

	patternLength := len(pattern)
	readLength := len(h.Seq)

	var beginSearch, endSearch int
	for {
		candidateRepeatIndex := lastRepeatIndex + repeatSpacing
		beginSearch = candidateRepeatIndex - scanRange
		endSearch = candidateRepeatIndex + patternLength + scanRange

		scanRightMinBegin := lastRepeatIndex + patternLength + minSpacerLength
		if beginSearch < scanRightMinBegin {
			beginSearch = scanRightMinBegin
		}
		if beginSearch > readLength-1 {
			return readLength - 1
		}
		if endSearch > readLength {
			endSearch = readLength
		}
		if beginSearch >= endSearch {
			return endSearch
		}

		text := h.Seq[beginSearch:endSearch]
		position := match.Find(text, pattern)
		if position < 0 {
			return endSearch
		}

		h.AddInterval(beginSearch+position, beginSearch+position+patternLength)
		secondLastRepeatIndex = lastRepeatIndex
		lastRepeatIndex = beginSearch + position
		repeatSpacing = lastRepeatIndex - secondLastRepeatIndex
		if repeatSpacing < minSpacerLength+patternLength {
			return endSearch
		}
	}
}
