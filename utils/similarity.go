package utils

import (
	"strings"
)

// =============================================================================
// Text Similarity Utilities
// =============================================================================

// NormalizeText lowercases and trims text for comparison
func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// SequenceRatio calculates the similarity between two strings as
// 2*M / (len(a)+len(b)), where M is the total number of matching
// characters found by recursively locating the longest common
// substring (Ratcliff/Obershelp). Returns a value in [0.0, 1.0].
func SequenceRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)
	matches := matchingChars(ra, rb)

	return 2.0 * float64(matches) / float64(len(ra)+len(rb))
}

// matchingChars counts the total matching characters between two rune
// slices by finding the longest common substring and recursing on the
// pieces to its left and right.
func matchingChars(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}

	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestMatch finds the longest common substring of a and b, returning
// its start index in a, start index in b, and length. Ties resolve to
// the match occurring earliest in a, then earliest in b.
func longestMatch(a, b []rune) (int, int, int) {
	bestA, bestB, bestSize := 0, 0, 0

	// lengths[j] holds the length of the common suffix ending at
	// a[i-1] and b[j-1] from the previous row
	lengths := make(map[int]int)
	for i := 0; i < len(a); i++ {
		newLengths := make(map[int]int)
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				continue
			}
			k := lengths[j-1] + 1
			newLengths[j] = k
			if k > bestSize {
				bestA = i - k + 1
				bestB = j - k + 1
				bestSize = k
			}
		}
		lengths = newLengths
	}

	return bestA, bestB, bestSize
}
