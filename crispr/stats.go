package crispr

// Stats summarizes one pass (phase 1 or phase 2) of the pipeline.
type Stats struct {
	// RecordsScanned is the number of non-empty records passed to a phase 1
	// scanner; records with an empty sequence and phase 2 are not counted.
	RecordsScanned int
	// RecordsSkippedShort is the number of records shorter than the
	// minimum window required by the active scanner.
	RecordsSkippedShort int
	// RecordsSkippedMalformed is the number of records with an empty
	// sequence.
	RecordsSkippedMalformed int
	// CandidatesFound is the number of records whose scan ended with a
	// candidate that reached QC: those counted in Published plus those
	// counted in one of the Rejected fields.
	CandidatesFound int
	// RejectedLowComplexity is the number of candidates QC rejected because
	// a repeat's base frequency exceeded the low-complexity threshold.
	RejectedLowComplexity int
	// RejectedSimilarity is the number of candidates QC rejected for
	// excessive repeat/spacer or spacer/spacer similarity.
	RejectedSimilarity int
	// RejectedLengthHeterogeneity is the number of candidates QC rejected
	// for spacer or repeat/spacer length disparity.
	RejectedLengthHeterogeneity int
	// Published is the number of ReadHolders inserted into the ReadIndex.
	Published int
	// SingletonsRecruited is the number of reads recovered by phase 2.
	SingletonsRecruited int
}

// Merge adds the field values of s and o and returns the sum as a new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.RecordsScanned += o.RecordsScanned
	s.RecordsSkippedShort += o.RecordsSkippedShort
	s.RecordsSkippedMalformed += o.RecordsSkippedMalformed
	s.CandidatesFound += o.CandidatesFound
	s.RejectedLowComplexity += o.RejectedLowComplexity
	s.RejectedSimilarity += o.RejectedSimilarity
	s.RejectedLengthHeterogeneity += o.RejectedLengthHeterogeneity
	s.Published += o.Published
	s.SingletonsRecruited += o.SingletonsRecruited
	return s
}
