package zho

import (
	"strings"
)

// repMap is the punctuation-normalization table applied before G2P,
// grounded on chinese.rs's rep_map: full-width and CJK punctuation
// collapse onto the small ASCII-ish punctuation set the phoneme alphabet
// actually contains.
var repMap = map[string]string{
	"：": ",", "；": ",", "，": ",", "。": ".", "！": "!", "？": "?",
	"\n": ".", "·": ",", "、": ",", "...": "…", "$": ".",
	"“": "'", "”": "'", "‘": "'", "’": "'", "（": "", "）": "",
	"《": "", "》": "", "【": "", "】": "",
}

// specialSymbolMap is the reserved-control-character passthrough table
// (text_utils.rs::clean_special): these two literal characters bypass
// ordinary punctuation handling entirely and map straight to silence
// markers the acoustic model was trained to recognize.
var specialSymbolMap = map[string]string{
	"￥": "SP2",
	"^":  "SP3",
}

// applyRepMap runs the special-symbol pass and then the punctuation-
// normalization pass over raw text.
func applyRepMap(s string) string {
	for from, to := range specialSymbolMap {
		s = strings.ReplaceAll(s, from, to)
	}
	for from, to := range repMap {
		s = strings.ReplaceAll(s, from, to)
	}
	return s
}

// finalRespell restores the underlying three-letter finals that standard
// pinyin orthography abbreviates after certain initials (v_rep_map /
// pinyin_rep_map in chinese.rs): "iu" is phonemically "iou", "ui" is
// phonemically "uei", "un" (after anything but zero-initial) is
// phonemically "uen". Applied before tone-suffix attachment.
func finalRespell(final string) string {
	switch final {
	case "iu":
		return "iou"
	case "ui":
		return "uei"
	case "un":
		return "uen"
	default:
		return final
	}
}

// zeroInitialRespell expands the zero-initial "y"/"w" spellings used in
// standard pinyin (pinyin_rep_map): "yi"->"i", "yu"->"v" (ü), "wu"->"u",
// and the "y"/"w" glide prefixes elsewhere are simply stripped, since the
// symbol alphabet's Chinese finals are glide-free.
func zeroInitialRespell(syllableNoTone string) string {
	switch syllableNoTone {
	case "yi":
		return "i"
	case "yu":
		return "v"
	case "wu":
		return "u"
	case "yin":
		return "in"
	case "ying":
		return "ing"
	case "yun":
		return "vn"
	case "yuan":
		return "van"
	case "yue":
		return "ve"
	}
	if strings.HasPrefix(syllableNoTone, "y") {
		rest := "i" + syllableNoTone[1:]
		return rest
	}
	if strings.HasPrefix(syllableNoTone, "w") {
		rest := "u" + syllableNoTone[1:]
		return rest
	}
	return syllableNoTone
}

// singleRepMap handles the handful of finals that opencpop's strict set
// spells as a single irregular symbol rather than initial+final
// (single_rep_map in chinese.rs): these never get split further.
var singleRepMap = map[string]string{
	"ê": "e", "er": "er", "n": "en", "ng": "eng", "hm": "m", "hng": "n",
}

// OpencpopToSymbol splits a toneless pinyin syllable into its phoneme
// symbols (an optional initial, followed by exactly one toned final),
// mirroring chinese.rs::_g2p's pinyin_to_symbol_map / v_rep_map /
// pinyin_rep_map / single_rep_map chain. tone is 1..5.
func OpencpopToSymbol(syllableNoTone string, tone int) (initial, final string) {
	if mapped, ok := singleRepMap[syllableNoTone]; ok {
		return "", withTone(mapped, tone)
	}

	respelled := zeroInitialRespell(syllableNoTone)

	for _, ini := range chineseInitialsLongestFirst {
		if strings.HasPrefix(respelled, ini) && len(respelled) > len(ini) {
			rest := finalRespell(respelled[len(ini):])
			return ini, withTone(rest, tone)
		}
	}
	// Zero-initial syllable (the whole thing is the final): "a1", "ai4"...
	return "", withTone(finalRespell(respelled), tone)
}

func withTone(final string, tone int) string {
	if tone < 1 || tone > 5 {
		tone = 5
	}
	return final + string(rune('0'+tone))
}

// chineseInitialsLongestFirst mirrors symbols.chineseInitials but ordered
// so multi-letter initials ("zh", "ch", "sh") are tried before their
// single-letter prefixes.
var chineseInitialsLongestFirst = []string{
	"zh", "ch", "sh",
	"b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h",
	"j", "q", "x", "r", "z", "c", "s",
}

// ToPhonemeSymbols converts a full Tone3-style syllable (e.g. "zhong1")
// into the one or two phoneme symbols from the closed alphabet, logging
// nothing itself — callers are expected to check symbols.Contains and
// emit a LookupMiss warning around an unresolved symbol.
func ToPhonemeSymbols(syllableTone3 string) []string {
	if syllableTone3 == "" {
		return nil
	}
	toneDigit := syllableTone3[len(syllableTone3)-1]
	tone := 5
	base := syllableTone3
	if toneDigit >= '1' && toneDigit <= '5' {
		tone = int(toneDigit - '0')
		base = syllableTone3[:len(syllableTone3)-1]
	}
	initial, final := OpencpopToSymbol(base, tone)
	var out []string
	if initial != "" {
		out = append(out, initial)
	}
	out = append(out, final)
	return out
}
