// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides ASCII-sequence operations shared by the scanning,
// canonicalization, and homopolymer-encoding packages: reverse complement,
// per-base frequency counting, and run-length homopolymer compression.
package biosimd

var revCompTable = [256]byte{}

func init() {
	for i := range revCompTable {
		revCompTable[i] = 'N'
	}
	revCompTable['A'], revCompTable['a'] = 'T', 'T'
	revCompTable['C'], revCompTable['c'] = 'G', 'G'
	revCompTable['G'], revCompTable['g'] = 'C', 'C'
	revCompTable['T'], revCompTable['t'] = 'A', 'A'
	revCompTable['N'], revCompTable['n'] = 'N', 'N'
}

// ReverseComplementInto writes the reverse complement of src to dst.
// It panics if len(dst) != len(src).
func ReverseComplementInto(dst, src []byte) {
	n := len(src)
	if len(dst) != n {
		panic("biosimd: ReverseComplementInto requires len(dst) == len(src)")
	}
	for i, j := 0, n-1; i < n; i, j = i+1, j-1 {
		dst[i] = revCompTable[src[j]]
	}
}

// ReverseComplement returns the reverse complement of seq as a new string.
func ReverseComplement(seq string) string {
	buf := make([]byte, len(seq))
	ReverseComplementInto(buf, []byte(seq))
	return string(buf)
}

// ReverseComplementInplace reverse-complements ascii in place.
func ReverseComplementInplace(ascii []byte) {
	n := len(ascii)
	half := n / 2
	for i, j := 0, n-1; i != half; i, j = i+1, j-1 {
		ascii[i], ascii[j] = revCompTable[ascii[j]], revCompTable[ascii[i]]
	}
	if n&1 == 1 {
		ascii[half] = revCompTable[ascii[half]]
	}
}
