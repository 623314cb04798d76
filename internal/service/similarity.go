package service

import (
	"math"
	"strings"
)

// fuzzySimilarityThreshold is the minimum Ratcliff-Obershelp ratio for
// a fuzzy symptom match to be considered at all.
const fuzzySimilarityThreshold = 0.75

// similarityRatio computes the Ratcliff-Obershelp similarity of two
// strings in [0,1]: twice the number of matching characters (summed
// over recursively found longest common blocks) divided by the total
// length. Comparison is case-insensitive.
func similarityRatio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingChars(a, b)) / float64(total)
}

// matchingChars sums the lengths of the longest matching blocks found
// recursively to the left and right of each block.
func matchingChars(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	ai, bi, size := longestMatchingBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestMatchingBlock finds the longest common substring of a and b,
// returning its start offsets and length. Ties resolve to the earliest
// position in a, then in b.
func longestMatchingBlock(a, b string) (int, int, int) {
	bestA, bestB, bestLen := 0, 0, 0
	// runLen[j] = length of the common run ending at a[i-1], b[j-1].
	runLen := make(map[int]int)
	for i := 0; i < len(a); i++ {
		next := make(map[int]int)
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				continue
			}
			k := runLen[j-1] + 1
			next[j] = k
			if k > bestLen {
				bestA, bestB, bestLen = i-k+1, j-k+1, k
			}
		}
		runLen = next
	}
	return bestA, bestB, bestLen
}

// round1 and round2 round half away from zero to 1 and 2 decimal
// places. Scores are rounded at fixed points in the pipeline, and later
// adjustments compound on the rounded values.
func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
