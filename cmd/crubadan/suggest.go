package main

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"crubadan/internal/language"
)

const maxSuggestions = 3

// suggestCodes returns up to maxSuggestions codes from candidates that fuzzily
// match query, either by code or by English language name.
func suggestCodes(query string, candidates []string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(candidates) == 0 {
		return nil
	}

	keys := make([]string, len(candidates))
	for i, code := range candidates {
		keys[i] = strings.ToLower(code + " " + language.DisplayName(code))
	}

	seen := make(map[string]struct{}, maxSuggestions)
	var out []string
	for _, match := range fuzzy.Find(query, keys) {
		code := candidates[match.Index]
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func suggestionSuffix(query string, candidates []string) string {
	suggestions := suggestCodes(query, candidates)
	if len(suggestions) == 0 {
		return ""
	}
	return "; did you mean " + strings.Join(suggestions, ", ") + "?"
}
