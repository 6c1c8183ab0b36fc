package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// ChunkifyLatin is the uniseg-based fallback the Chunker reaches for
// when a segment longer than MaxChars has no comma to split on (for
// instance a long English-only run): it splits on sentence boundaries
// first, falling back to word boundaries, and greedily recombines the
// pieces, joined by a single space, up to max runes.
func ChunkifyLatin(s string, max int) []string {
	if max > 0 && utf8.RuneCountInString(s) <= max {
		return []string{s}
	}

	for _, split := range []func(string) []string{splitSentences, splitWords} {
		tokens := split(s)
		if !tokensWithinLimit(tokens, max) {
			continue
		}
		if combined := combineTokens(tokens, " ", max); combined != nil {
			return combined
		}
	}
	return []string{s}
}

func tokensWithinLimit(tokens []string, max int) bool {
	for _, t := range tokens {
		if max > 0 && utf8.RuneCountInString(t) > max {
			return false
		}
	}
	return true
}

func combineTokens(tokens []string, joiner string, max int) []string {
	var result []string
	var current string
	for i, tok := range tokens {
		if current == "" {
			current = tok
			continue
		}
		candidate := current + joiner + tok
		if utf8.RuneCountInString(candidate) <= max {
			current = candidate
		} else {
			result = append(result, current)
			current = tok
		}
		if i == len(tokens)-1 {
			result = append(result, current)
		}
	}
	if current != "" && (len(result) == 0 || result[len(result)-1] != current) {
		result = append(result, current)
	}
	for _, c := range result {
		if utf8.RuneCountInString(c) > max {
			return nil
		}
	}
	return result
}

func splitSentences(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	remaining, state := text, -1
	for len(remaining) > 0 {
		sentence, rest, newState := uniseg.FirstSentenceInString(remaining, state)
		if sentence != "" {
			out = append(out, strings.TrimSpace(sentence))
		}
		remaining, state = rest, newState
	}
	return out
}

func splitWords(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	remaining, state := text, -1
	for len(remaining) > 0 {
		word, rest, newState := uniseg.FirstWordInString(remaining, state)
		if word != "" {
			out = append(out, strings.TrimSpace(word))
		}
		remaining, state = rest, newState
	}
	return out
}
