// Package symbols holds the closed phoneme alphabet shared by the Chinese
// and English grapheme-to-phoneme pipelines: a phoneme's position in
// SYMBOLS is its integer id, exactly as produced by the original
// zh_normalization/text/symbols table this module reconstructs (the
// retrieval pack's copy of that file was not available; this table was
// rebuilt from the call sites in chinese.rs and english.rs and the
// OPENCPOP_STRICT convention they reference).
package symbols

// punctuation and control symbols. SP2/SP3 are the silence/pause markers
// substituted for the literal "￥" and "^" characters in Chinese input.
var punctuation = []string{
	"!", "?", "…", ",", ".", "-", "SP2", "SP3",
}

// pause/unknown sentinel, always present so lookups never need a second
// "did we find it" branch.
const unknownSymbol = "UNK"

// chineseInitials is the set of pre-tone initials chinese.rs emits as
// standalone phoneme symbols (c != "" branch of _g2p).
var chineseInitials = []string{
	"b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h",
	"j", "q", "x", "zh", "ch", "sh", "r", "z", "c", "s",
}

// chineseFinals is the OPENCPOP_STRICT final inventory (pre-tone). Each
// entry gets every tone suffix 1..5 appended below.
var chineseFinals = []string{
	"a", "ai", "an", "ang", "ao",
	"e", "ei", "en", "eng", "er",
	"i", "ia", "ian", "iang", "iao", "ie", "in", "ing", "iong", "iu",
	"ir", "i0",
	"o", "ong", "ou",
	"u", "ua", "uai", "uan", "uang", "ui", "un", "uo",
	"v", "van", "ve", "vn",
}

// arpabet is the 39-phone CMU-style ARPABET set used by the English
// lexicon/spelling-fallback path (english.rs, replace_phs).
var arpabet = []string{
	"AA", "AE", "AH", "AO", "AW", "AY", "B", "CH", "D", "DH",
	"EH", "ER", "EY", "F", "G", "HH", "IH", "IY", "JH", "K",
	"L", "M", "N", "NG", "OW", "OY", "P", "R", "S", "SH",
	"T", "TH", "UH", "UW", "V", "W", "Y", "Z", "ZH",
}

// SYMBOLS is the full, ordered, closed phoneme alphabet. A symbol's slice
// index is its phoneme id.
var SYMBOLS []string

// symbolToID is the inverse of SYMBOLS, built once at init.
var symbolToID map[string]int

func init() {
	SYMBOLS = append(SYMBOLS, unknownSymbol)
	SYMBOLS = append(SYMBOLS, punctuation...)
	SYMBOLS = append(SYMBOLS, chineseInitials...)
	for _, final := range chineseFinals {
		for tone := 1; tone <= 5; tone++ {
			SYMBOLS = append(SYMBOLS, final+toneDigit(tone))
		}
	}
	SYMBOLS = append(SYMBOLS, arpabet...)

	symbolToID = make(map[string]int, len(SYMBOLS))
	for i, s := range SYMBOLS {
		symbolToID[s] = i
	}
}

func toneDigit(tone int) string {
	return string(rune('0' + tone))
}

// ID returns the phoneme id for symbol s, and whether it was found. Callers
// implement LookupMiss handling (log + skip) around the false case.
func ID(s string) (int, bool) {
	id, ok := symbolToID[s]
	return id, ok
}

// Contains reports whether s belongs to the closed alphabet.
func Contains(s string) bool {
	_, ok := symbolToID[s]
	return ok
}

// ToSequence converts cleaned phoneme symbols to their integer ids, mapping
// any symbol outside the closed alphabet to id 0 (UNK) rather than failing —
// this mirrors cleaned_text_to_sequence in chinese.rs / text_utils.rs, which
// never aborts on an unrecognized symbol.
func ToSequence(cleaned []string) []int {
	ids := make([]int, len(cleaned))
	for i, s := range cleaned {
		if id, ok := symbolToID[s]; ok {
			ids[i] = id
		}
	}
	return ids
}
