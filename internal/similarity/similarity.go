// Package similarity implements the scoring functions used to compare
// documents: a sequence-matching ratio over raw text, a token-overlap
// percentage, and a Jaccard index over token sets. All functions are
// stateless and safe for concurrent use.
package similarity

import "math"

// SimilarityRatio computes the matched-character ratio between two raw
// strings using longest-contiguous-matching-blocks semantics:
// 2*M / (len(a)+len(b)) where M is the total matched length.
// Returns a percentage in [0, 100] rounded to two decimals. Two empty
// strings are considered identical (100.00). Symmetric.
func SimilarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100.0
	}
	matched := newSequenceMatcher(ra, rb).matchedCount()
	return round2(200 * float64(matched) / float64(total))
}

// OverlapScore computes the fraction of tokensA entries found in tokensB,
// as a percentage in [0, 100] rounded to two decimals. Repeated tokens in
// tokensA each count independently, so the score is asymmetric: the
// denominator is always len(tokensA). Empty tokensA yields 0.00.
func OverlapScore(tokensA, tokensB []string) float64 {
	if len(tokensA) == 0 {
		return 0.0
	}
	inB := make(map[string]struct{}, len(tokensB))
	for _, t := range tokensB {
		inB[t] = struct{}{}
	}
	overlap := 0
	for _, t := range tokensA {
		if _, ok := inB[t]; ok {
			overlap++
		}
	}
	return round2(100 * float64(overlap) / float64(len(tokensA)))
}

// JaccardScore computes the Jaccard index of the two token sets:
// |intersection| / |union|, in [0, 1] rounded to two decimals. Unlike the
// other scores this is not scaled to 100. Symmetric. An empty union
// yields 0.00.
func JaccardScore(tokensA, tokensB []string) float64 {
	setA := make(map[string]struct{}, len(tokensA))
	for _, t := range tokensA {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(tokensB))
	for _, t := range tokensB {
		setB[t] = struct{}{}
	}

	intersection := 0
	union := make(map[string]struct{}, len(setA)+len(setB))
	for t := range setA {
		union[t] = struct{}{}
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	for t := range setB {
		union[t] = struct{}{}
	}

	if len(union) == 0 {
		return 0.0
	}
	return round2(float64(intersection) / float64(len(union)))
}

// round2 rounds to two decimal places, half away from zero. A single rule
// keeps the three scores reproducible against each other.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
