package ingredient

import (
	"strings"
)

// Resolve matches a free-text ingredient name against candidate names and
// returns the index of the best candidate, or -1.
//
// Rules are tried in priority order and the first rule with any match wins:
//  1. exact match after case and whitespace normalization
//  2. equality after folding a trailing "s" on either side
//  3. word-boundary substring containment in either direction
//
// Within a rule, ties break to the candidate with the longest normalized
// name, then lexicographically. Deterministic, no side effects.
func Resolve(name string, candidates []string) int {
	target := Normalize(name)
	if target == "" {
		return -1
	}

	rules := []func(a, b string) bool{
		func(a, b string) bool { return a == b },
		func(a, b string) bool { return singular(a) == singular(b) },
		func(a, b string) bool { return containsWords(a, b) || containsWords(b, a) },
	}

	for _, rule := range rules {
		best := -1
		for i, candidate := range candidates {
			normalized := Normalize(candidate)
			if normalized == "" || !rule(target, normalized) {
				continue
			}
			if best == -1 || betterCandidate(normalized, Normalize(candidates[best])) {
				best = i
			}
		}
		if best != -1 {
			return best
		}
	}
	return -1
}

// Normalize lowercases a name and collapses internal whitespace.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func singular(s string) string {
	if len(s) > 1 && strings.HasSuffix(s, "s") {
		return strings.TrimSuffix(s, "s")
	}
	return s
}

// containsWords reports whether needle occurs in hay on word boundaries.
func containsWords(hay, needle string) bool {
	return strings.Contains(" "+hay+" ", " "+needle+" ")
}

func betterCandidate(candidate, current string) bool {
	if len(candidate) != len(current) {
		return len(candidate) > len(current)
	}
	return candidate < current
}
