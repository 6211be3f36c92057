// Package text provides the string similarity primitives shared by the
// consolidator, the fuzzy matcher, and the ingestion relation mapper.
// Scores are integers from 0 to 100.
package text

import (
	"sort"
	"strings"
)

// Ratio is the normalized Levenshtein similarity of two strings.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 100
	}
	dist := Levenshtein(a, b)
	return (longest - dist) * 100 / longest
}

// PartialRatio slides the shorter string over every window of the longer one
// and returns the best Ratio found. "drained" against "feeling drained today"
// scores 100.
func PartialRatio(a, b string) int {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100
		}
		return 0
	}
	if len(shorter) == len(longer) {
		return Ratio(shorter, longer)
	}

	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		score := Ratio(shorter, longer[i:i+len(shorter)])
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio tokenizes both strings, sorts the tokens, and compares the
// rejoined forms, so word order does not affect the score.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

func sortedTokens(s string) string {
	tokens := Tokenize(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// WRatio is the weighted best-of similarity used everywhere labels are
// compared: the maximum of the whole-string ratio, the token-sort ratio
// scaled by 0.95, and the best partial window scaled by 0.90. Inputs are
// lower-cased first. Symmetric in its arguments.
func WRatio(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	best := Ratio(a, b)
	if s := TokenSortRatio(a, b) * 95 / 100; s > best {
		best = s
	}
	if s := PartialRatio(a, b) * 90 / 100; s > best {
		best = s
	}
	return best
}

// Tokenize splits text into lower-case alphanumeric tokens.
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	return strings.FieldsFunc(s, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
}

// Levenshtein is the edit distance between two strings, operating on bytes.
func Levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := 0; j <= len(s2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = minInt(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}

func minInt(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
