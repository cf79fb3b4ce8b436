// crispr-find scans a FASTA or FASTQ file of sequencing reads for CRISPR
// direct-repeat arrays.
//
// Usage: crispr-find -input reads.fastq -output report.txt
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/crispr"
	"github.com/grailbio/crispr/holder"
)

var (
	inputFlag  = flag.String("input", "", "FASTA/FASTQ file to scan. \"-\" reads stdin. Gzip input is detected automatically.")
	outputFlag = flag.String("output", "", "Path to write the canonical-repeat report. (default stdout)")

	lowDRFlag          = flag.Int("low-dr", crispr.DefaultConfig.LowDR, "Minimum accepted repeat length.")
	highDRFlag         = flag.Int("high-dr", crispr.DefaultConfig.HighDR, "Maximum accepted repeat length.")
	lowSpacerFlag      = flag.Int("low-spacer", crispr.DefaultConfig.LowSpacer, "Minimum accepted spacer length.")
	highSpacerFlag     = flag.Int("high-spacer", crispr.DefaultConfig.HighSpacer, "Maximum accepted spacer length.")
	searchWindowFlag   = flag.Int("search-window", crispr.DefaultConfig.SearchWindowLen, "LongScanner seed kmer length.")
	minNumRepeatsFlag  = flag.Int("min-num-repeats", crispr.DefaultConfig.MinNumRepeats, "LongScanner extends a candidate only once it holds more than this many repeat intervals.")
	trimConfidenceFlag = flag.Float64("trim-confidence", crispr.DefaultConfig.TrimConfidence, "Voting fraction: a column extends the repeat boundary only when more than max(2, floor(fraction*n)) of the n voting intervals agree on its base.")
	maxSimilarityFlag  = flag.Float64("max-similarity", crispr.DefaultConfig.MaxSimilarity, "QC rejection threshold for repeat/spacer similarity.")
	spacerSpacerFlag   = flag.Float64("spacer-to-spacer-delta", crispr.DefaultConfig.SpacerToSpacerDelta, "QC tolerance, in bases, for spacer-to-spacer length difference.")
	spacerRepeatFlag   = flag.Float64("spacer-to-repeat-delta", crispr.DefaultConfig.SpacerToRepeatDelta, "QC tolerance, in bases, for repeat-to-spacer length difference.")
	lowComplexityFlag  = flag.Float64("low-complexity-threshold", crispr.DefaultConfig.LowComplexityThreshold, "Per-base frequency cap before a repeat is rejected as low complexity.")
	removeHomoFlag     = flag.Bool("remove-homopolymers", crispr.DefaultConfig.RemoveHomopolymers, "Run-length encode homopolymers before scanning.")
	maxReadsForDecFlag = flag.Int("max-reads-for-decision", crispr.DefaultConfig.MaxReadsForDecision, "Number of leading records sampled to choose LongScanner vs ShortScanner.")
)

func configFromFlags() crispr.Config {
	return crispr.Config{
		LowDR:                  *lowDRFlag,
		HighDR:                 *highDRFlag,
		LowSpacer:              *lowSpacerFlag,
		HighSpacer:             *highSpacerFlag,
		SearchWindowLen:        *searchWindowFlag,
		MinNumRepeats:          *minNumRepeatsFlag,
		TrimConfidence:         *trimConfidenceFlag,
		MaxSimilarity:          *maxSimilarityFlag,
		SpacerToSpacerDelta:    *spacerSpacerFlag,
		SpacerToRepeatDelta:    *spacerRepeatFlag,
		LowComplexityThreshold: *lowComplexityFlag,
		RemoveHomopolymers:     *removeHomoFlag,
		MaxReadsForDecision:    *maxReadsForDecFlag,
	}
}

// writeReport writes one line per canonical repeat bucket: the repeat
// string, the number of reads exhibiting it, and their ids, all
// tab-separated.
func writeReport(w *bufio.Writer, result *crispr.Result) error {
	var writeErr error
	result.Index.Each(func(canonical string, reads []*holder.ReadHolder) {
		if writeErr != nil {
			return
		}
		fmt.Fprintf(w, "%s\t%d", canonical, len(reads))
		for _, h := range reads {
			fmt.Fprintf(w, "\t%s", h.ID)
		}
		_, writeErr = fmt.Fprintln(w)
	})
	return writeErr
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	flag.Parse()
	shutdown := grail.Init()
	defer shutdown()

	if *inputFlag == "" {
		log.Error.Printf("crispr-find: -input is required")
		os.Exit(1)
	}

	ctx := context.Background()
	result, err := crispr.Run(ctx, *inputFlag, configFromFlags())
	if err != nil {
		log.Error.Printf("crispr-find: %v", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outputFlag != "" {
		f, err := os.Create(*outputFlag)
		if err != nil {
			log.Error.Printf("crispr-find: %v", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	if err := writeReport(w, result); err != nil {
		log.Error.Printf("crispr-find: writing report: %v", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		log.Error.Printf("crispr-find: writing report: %v", err)
		os.Exit(1)
	}

	log.Info.Printf("crispr-find: scanned %d records, published %d, recruited %d singletons "+
		"(rejected: %d low-complexity, %d similarity, %d length-heterogeneity)",
		result.Stats.RecordsScanned, result.Stats.Published, result.Stats.SingletonsRecruited,
		result.Stats.RejectedLowComplexity, result.Stats.RejectedSimilarity, result.Stats.RejectedLengthHeterogeneity)
}
