package eng

import (
	"strings"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/symbols"
)

// G2P converts English sentences into phoneme symbol sequences aligned
// with a word2ph expansion table, mirroring zho.G2P's Result shape so
// LanguageSegmenter callers can treat CN/EN spans uniformly.
type G2P struct {
	dict *Dict
}

// New constructs an English G2P. dict may be nil, in which case every
// word falls through to the letter-spelling fallback.
func New(dict *Dict) *G2P {
	return &G2P{dict: dict}
}

// Result mirrors zho.Result: a flat phoneme sequence plus a word2ph
// table over the cleaned input tokens.
type Result struct {
	Phonemes []string
	Word2Ph  []int
}

// Convert runs number normalization, tokenization, dictionary lookup (or
// letter-spelling fallback), and ARPABET symbol filtering over text.
func (g *G2P) Convert(text string) Result {
	normalized := NormalizeNumbers(text)
	tokens := Tokenize(normalized)

	var result Result
	for _, tok := range tokens {
		if isWordToken(tok) {
			phones, ok := g.dict.Lookup(tok)
			if !ok {
				phones = SpellOut(tok)
			}
			filtered := replacePhs(phones)
			result.Phonemes = append(result.Phonemes, filtered...)
			result.Word2Ph = append(result.Word2Ph, len(filtered))
			continue
		}
		sym := punctuationSymbol(tok)
		result.Phonemes = append(result.Phonemes, sym)
		result.Word2Ph = append(result.Word2Ph, 1)
	}
	return result
}

func isWordToken(tok string) bool {
	for _, r := range tok {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '\'') {
			return false
		}
	}
	return tok != ""
}

// replacePhs filters a raw ARPABET phone list down to symbols the closed
// phoneme alphabet actually contains, dropping stress-digit suffixes
// CMU-style dictionaries sometimes carry (e.g. "AH0" -> "AH") before the
// containment check, mirroring english.rs::replace_phs.
func replacePhs(phones []string) []string {
	out := make([]string, 0, len(phones))
	for _, p := range phones {
		stripped := strings.TrimRight(p, "012")
		if symbols.Contains(stripped) {
			out = append(out, stripped)
		} else if symbols.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

func punctuationSymbol(s string) string {
	switch s {
	case "!", "?", ",", ".", "-", "…":
		return s
	case ";", ":":
		return ","
	case " ", "\t", "\n":
		return "."
	default:
		if symbols.Contains(s) {
			return s
		}
		return "UNK"
	}
}
