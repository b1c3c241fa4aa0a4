package errors

import (
	"fmt"
	"strings"
)

// SuggestKeyword suggests a reserved word close to an unknown one, e.g. for
// "axdeff" it returns "Did you mean 'axdef'?". It returns an empty string when
// nothing is within two edits, since most identifiers are not typos.
func SuggestKeyword(unknown string, keywords []string) string {
	if len(keywords) == 0 || len(unknown) < 3 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, kw := range keywords {
		if kw == unknown {
			return ""
		}
		dist := levenshteinDistance(strings.ToLower(unknown), strings.ToLower(kw))
		if dist < minDistance {
			minDistance = dist
			bestMatch = kw
		}
	}

	if minDistance <= 2 && minDistance < len(bestMatch) {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// SuggestClosing suggests the delimiter that would close an open construct.
func SuggestClosing(open, close string) string {
	return fmt.Sprintf("Add '%s' to close the '%s'", close, open)
}

// levenshteinDistance computes the edit distance between two strings, rune-wise.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	len1 := len(r1)
	len2 := len(r2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
