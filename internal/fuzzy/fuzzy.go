// Package fuzzy implements the ranking used by the schema_info tool to
// resolve a caller's free-text query against model/field api_keys, names,
// and ids.
package fuzzy

import "strings"

// Score computes a match score of target against query. Zero means
// "discard"; higher is better. Rules, in order of preference:
//
//   - exact case-insensitive match: 1000
//   - substring match: 500 + a position bonus (earlier is better),
//     checked in both directions (query in target, target in query)
//   - Levenshtein distance normalized by the longer string's length,
//     accepted when the ratio is under 0.5: 450 - 150*ratio
//   - in-order character subsequence match: 10*matches + 5*consecutive
func Score(query, target string) int {
	if target == "" {
		return 0
	}

	q := strings.ToLower(query)
	tg := strings.ToLower(target)

	if q == tg {
		return 1000
	}

	if score, ok := substringScore(q, tg); ok {
		return score
	}

	if ratio, ok := levenshteinRatio(q, tg); ok && ratio < 0.5 {
		return int(450 - 150*ratio)
	}

	if score := subsequenceScore(q, tg); score > 0 {
		return score
	}

	return 0
}

// substringScore checks bidirectional substring containment. Earlier
// matches score higher; matching the whole other string as a prefix scores
// highest within this tier.
func substringScore(q, tg string) (int, bool) {
	if idx := strings.Index(tg, q); idx >= 0 {
		return 500 + positionBonus(idx, len(tg)), true
	}
	if idx := strings.Index(q, tg); idx >= 0 {
		return 500 + positionBonus(idx, len(q)), true
	}
	return 0, false
}

// positionBonus rewards an earlier match position, capped so it never
// pushes a substring match above the next tier (exact match).
func positionBonus(idx, length int) int {
	if length == 0 {
		return 0
	}
	bonus := 100 - (idx*100)/length
	if bonus < 0 {
		bonus = 0
	}
	if bonus > 100 {
		bonus = 100
	}
	return bonus
}

// levenshteinRatio returns the edit distance normalized by the length of
// the longer string.
func levenshteinRatio(a, b string) (float64, bool) {
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 0, false
	}
	d := levenshtein(a, b)
	return float64(d) / float64(longer), true
}

// subsequenceScore checks whether query occurs in full as an in-order (not
// necessarily contiguous) subsequence of target, rewarding runs of
// characters that land on adjacent target positions. A partial match (not
// every query character found) scores zero.
func subsequenceScore(q, tg string) int {
	if q == "" {
		return 0
	}

	matches := 0
	consecutive := 0
	ti := 0
	lastMatchedAt := -1

	for qi := 0; qi < len(q); qi++ {
		found := false
		for ; ti < len(tg); ti++ {
			if tg[ti] == q[qi] {
				found = true
				break
			}
		}
		if !found {
			break
		}
		matches++
		if lastMatchedAt == ti-1 {
			consecutive++
		}
		lastMatchedAt = ti
		ti++
	}

	if matches != len(q) {
		return 0
	}
	return 10*matches + 5*consecutive
}

// levenshtein computes the Levenshtein edit distance between two strings.
func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,
				curr[j-1]+1,
				prev[j-1]+cost,
			)
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}

// Match pairs a candidate with its score, used by callers that rank a set
// of candidates and need stable, insertion-order tie-breaking.
type Match[T any] struct {
	Value T
	Score int
}

// Rank scores every candidate against query using keyFn to extract the text
// to match, discards zero-score candidates, and returns the survivors
// sorted by descending score with ties broken by original order.
func Rank[T any](query string, candidates []T, keyFn func(T) string) []Match[T] {
	matches := make([]Match[T], 0, len(candidates))
	for _, c := range candidates {
		s := Score(query, keyFn(c))
		if s > 0 {
			matches = append(matches, Match[T]{Value: c, Score: s})
		}
	}

	// Stable insertion sort keeps insertion order on ties.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].Score > matches[j-1].Score; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
	return matches
}
