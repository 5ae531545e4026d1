// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package suggest proposes close matches for mistyped identifiers.
package suggest

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

const (
	// MaxSuggestions caps how many alternatives are offered.
	MaxSuggestions = 5
	// MaxDistance caps the edit distance threshold for long tokens.
	MaxDistance = 7
)

// Similar returns up to MaxSuggestions candidates that resemble token.
// Candidates that start with token come first, in lexical order. The rest are
// candidates within edit distance min(len(token)-1, MaxDistance), closest
// first and ties in lexical order. Matching is case-sensitive.
func Similar(candidates []string, token string) []string {
	if token == "" || len(candidates) == 0 {
		return nil
	}

	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	var result []string
	seen := map[string]bool{}
	for _, c := range sorted {
		if c != token && strings.HasPrefix(c, token) {
			result = append(result, c)
			seen[c] = true
		}
	}

	threshold := min(len([]rune(token))-1, MaxDistance)
	if threshold > 0 {
		params := levenshtein.NewParams().MaxCost(threshold)

		type scored struct {
			id   string
			dist int
		}
		var near []scored
		for _, c := range sorted {
			if seen[c] || c == token {
				continue
			}
			if d := levenshtein.Distance(token, c, params); d <= threshold {
				near = append(near, scored{id: c, dist: d})
			}
		}
		sort.SliceStable(near, func(i, j int) bool {
			return near[i].dist < near[j].dist
		})
		for _, n := range near {
			result = append(result, n.id)
		}
	}

	if len(result) > MaxSuggestions {
		result = result[:MaxSuggestions]
	}
	return result
}

// DidYouMean formats the suggestions for token as a single
// "did you mean: x, y, z" line, or returns "" when there are none.
func DidYouMean(candidates []string, token string) string {
	similar := Similar(candidates, token)
	if len(similar) == 0 {
		return ""
	}
	return "did you mean: " + strings.Join(similar, ", ")
}
