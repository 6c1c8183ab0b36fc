// Package pinyin converts Han text to pinyin syllables, grounded on the
// Rust lazy_pinyin module (lazy_pinyin.rs, convert.rs, style.rs, mmseg.rs)
// with github.com/mozillazg/go-pinyin supplying the underlying dictionary
// lookup, the same library translitkit's zho provider falls back to
// (lang/zho/go-pinyin.go).
package pinyin

import (
	"regexp"
	"strconv"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Style selects which part of the syllable a Convert call returns.
type Style int

const (
	// Tone3 renders the full syllable with the tone as a trailing digit
	// (e.g. "ni3", "hao3").
	Tone3 Style = iota
	// FinalsTone3 is spec-compatible alias for Tone3: a full syllable with
	// trailing tone digit. In pypinyin proper, FINALS_TONE3 strips the
	// initial consonant; the original this module is grounded on instead
	// keeps the full syllable under that name, which is what spec.md's
	// worked examples (NumberNormalizer §8, "PinyinEngine(...,
	// FINALS_TONE3)") assume, so that behavior is preserved here.
	FinalsTone3
	// Initials renders only the syllable's initial consonant ("" for a
	// zero-initial syllable).
	Initials
	// Normal renders the syllable without any tone marking.
	Normal
)

// Engine converts Han text into per-character pinyin candidate lists.
type Engine struct {
	heteronymArgs gopinyin.Args
}

// NewEngine constructs a pinyin Engine with heteronym lookup enabled, so
// callers (ToneSandhi, ChineseG2P) can inspect every candidate reading
// rather than only the dictionary's most frequent one.
func NewEngine() *Engine {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone3
	args.Heteronym = true
	// Keep runes without a reading (one entry per rune) instead of letting
	// go-pinyin drop them, so Convert's result stays aligned with text.
	args.Fallback = func(r rune, a gopinyin.Args) []string { return []string{string(r)} }
	return &Engine{heteronymArgs: args}
}

// Convert returns, for each rune of text (processed in original sequence),
// the ordered list of candidate pinyin readings in the requested style.
// Non-Han runes (punctuation, digits, Latin) pass through untouched as a
// single-candidate entry holding the rune itself.
func (e *Engine) Convert(text string, style Style) [][]string {
	raw := gopinyin.Pinyin(text, e.heteronymArgs)
	result := make([][]string, len(raw))
	for i, candidates := range raw {
		if len(candidates) == 0 {
			result[i] = []string{string([]rune(text)[i])}
			continue
		}
		converted := make([]string, len(candidates))
		for j, c := range candidates {
			converted[j] = project(c, style)
		}
		result[i] = converted
	}
	return result
}

// First is a convenience wrapper returning only the most frequent reading
// per rune, the dictionary-order default before any tone sandhi runs.
func (e *Engine) First(text string, style Style) []string {
	groups := e.Convert(text, style)
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g[0]
	}
	return out
}

var reTrailingDigit = regexp.MustCompile(`(\d)$`)

// project reslices a go-pinyin Tone3-style syllable (e.g. "zhong1") down
// to the requested Style.
func project(syllable string, style Style) string {
	switch style {
	case Tone3, FinalsTone3:
		return syllable
	case Normal:
		return stripTone(syllable)
	case Initials:
		return initialOf(stripTone(syllable))
	default:
		return syllable
	}
}

func stripTone(syllable string) string {
	return reTrailingDigit.ReplaceAllString(syllable, "")
}

// initials is the closed set of Mandarin pinyin initial consonants,
// checked longest-first so "zh"/"ch"/"sh" aren't mistaken for "z"/"c"/"s".
var initials = []string{"zh", "ch", "sh", "b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h", "j", "q", "x", "r", "z", "c", "s", "y", "w"}

func initialOf(syllableNoTone string) string {
	for _, ini := range initials {
		if len(syllableNoTone) >= len(ini) && syllableNoTone[:len(ini)] == ini {
			return ini
		}
	}
	return ""
}

// Tone extracts the trailing tone digit (1-5, 5 meaning neutral) from a
// Tone3-style syllable. Returns 5 if the syllable carries no digit.
func Tone(syllable string) int {
	m := reTrailingDigit.FindStringSubmatch(syllable)
	if len(m) < 2 {
		return 5
	}
	t, _ := strconv.Atoi(m[1])
	return t
}

// WithTone replaces the trailing tone digit of a Tone3-style syllable
// with tone, appending it if the syllable carried none.
func WithTone(syllable string, tone int) string {
	base := stripTone(syllable)
	return base + strconv.Itoa(tone)
}
