package bip39

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestionDistance bounds how different a wordlist entry may be from
// the input before it stops being considered a plausible typo.
const maxSuggestionDistance = 2

// Typo describes a single mistyped word and its closest wordlist match.
type Typo struct {
	Position int
	Word     string
	Suggestion string
	Distance int
}

// SuggestWord returns the canonical wordlist entry closest to w by
// Levenshtein distance, or "" if nothing is within maxSuggestionDistance.
func SuggestWord(w string) string {
	w = strings.ToLower(w)
	best := ""
	bestDist := maxSuggestionDistance + 1

	for _, candidate := range WordList() {
		d := levenshtein.ComputeDistance(w, candidate)
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}

	if bestDist > maxSuggestionDistance {
		return ""
	}
	return best
}

// DetectTypos scans a normalized phrase for words absent from the
// wordlist and proposes the closest match for each. This is a CLI-facing
// convenience; core validation (Validate) never calls it.
func DetectTypos(phrase string) []Typo {
	words := strings.Fields(Normalize(phrase))
	var typos []Typo

	for i, w := range words {
		if IsValidWord(w) {
			continue
		}
		suggestion := SuggestWord(w)
		typos = append(typos, Typo{
			Position:   i,
			Word:       w,
			Suggestion: suggestion,
			Distance:   levenshtein.ComputeDistance(w, suggestion),
		})
	}

	return typos
}

// FormatTypoSuggestions renders typos as human-readable lines, e.g.
// "word 3: \"abadon\" -> did you mean \"abandon\"?".
func FormatTypoSuggestions(typos []Typo) []string {
	lines := make([]string, 0, len(typos))
	for _, t := range typos {
		if t.Suggestion == "" {
			lines = append(lines, fmt.Sprintf("word %d: %q is not a valid BIP-39 word", t.Position+1, t.Word))
			continue
		}
		lines = append(lines, fmt.Sprintf("word %d: %q -> did you mean %q?", t.Position+1, t.Word, t.Suggestion))
	}
	return lines
}
