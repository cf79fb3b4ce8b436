// Package scan implements the two primary-pass scanners, LongScanner and
// ShortScanner, that probe each input record for repeated direct-repeat
// patterns and hand surviving candidates to the QC filter.
package scan

import "github.com/grailbio/crispr/qc"

// Options is the subset of crispr.Config the scanners consult.
type Options struct {
	LowDR, HighDR         int
	LowSpacer, HighSpacer int
	SearchWindowLen       int
	MinNumRepeats         int
	TrimConfidence        float64
	RemoveHomopolymers    bool
	QC                    qc.Thresholds
}
