// Package tonesandhi applies Mandarin tone-sandhi rules to segmented
// text, grounded on text/tone_sandhi.rs. A sentence first runs through a
// pre-merge pass (merge_bu/merge_yi/merge_reduplication/merge_er) that
// joins adjacent jieba tokens the sandhi rules expect to see as one word
// — a standalone "不" absorbed into the following word, "V一V" verb
// reduplication collapsed to one token, immediately-repeated tokens
// joined, and a trailing "儿" absorbed into its host syllable — and only
// then does each (now possibly multi-character) word run the bu-sandhi,
// yi-sandhi, neutral-tone sandhi and three-three sandhi rules over its
// own Tone3 pinyin syllables.
package tonesandhi

import (
	"strings"
	"unicode"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/pinyin"
)

// Token is one jieba-segmented word before pinyin lookup: its surface
// text and part-of-speech tag.
type Token struct {
	Text string
	POS  string
}

// Sandhied is one (possibly pre-merged) word's text alongside its
// post-sandhi Tone3 pinyin syllables, one per rune of Text.
type Sandhied struct {
	Text   string
	Pinyin []string
}

// Sandhi applies the pre-merge pass and the fixed per-word sandhi rule
// chain. SplitWord re-segments a pre-merged 3-character word into its
// two constituent subwords for the three-tone-sandhi rule's subword-split
// branch (tone_sandhi.rs::_split_word, which re-invokes jieba on the
// merged word); the zero value uses a first-rune/remainder heuristic —
// see DESIGN.md's Open Question decisions for why a literal jieba re-cut
// isn't wired here.
type Sandhi struct {
	SplitWord func(word string) (first, rest string)
}

// New constructs a Sandhi applier with the default SplitWord heuristic.
func New() *Sandhi {
	return &Sandhi{SplitWord: defaultSplitWord}
}

func defaultSplitWord(word string) (string, string) {
	runes := []rune(word)
	if len(runes) < 2 {
		return word, ""
	}
	return string(runes[:1]), string(runes[1:])
}

// PreMerge runs merge_bu, merge_yi, merge_reduplication and merge_er over
// tokens in that fixed order (tone_sandhi.rs::pre_merge_for_modify).
// merge_continuous_three_tones and its _2 variant are omitted: tracing
// tone_sandhi.rs shows both seed their `merge_last` flag array to all
// `false` and only ever set an entry to `true` inside the branch that
// already required a `true` predecessor, so neither pass can ever fire a
// first merge — they are no-ops in the original. See DESIGN.md.
func (s *Sandhi) PreMerge(tokens []Token) []Token {
	tokens = mergeBu(tokens)
	tokens = mergeYi(tokens)
	tokens = mergeReduplication(tokens)
	tokens = mergeEr(tokens)
	return tokens
}

// mergeBu absorbs a standalone "不" token into the following token
// (tone_sandhi.rs::_merge_bu), so e.g. ["不", "是"] becomes ["不是"].
func mergeBu(tokens []Token) []Token {
	var out []Token
	lastWord := ""
	for _, t := range tokens {
		word := t.Text
		if lastWord == "不" {
			word = lastWord + word
		}
		if word != "不" {
			out = append(out, Token{Text: word, POS: t.POS})
		}
		lastWord = word
	}
	if lastWord == "不" {
		out = append(out, Token{Text: lastWord, POS: "d"})
	}
	return out
}

// mergeYi collapses "V一V" verb reduplication into one token and merges
// a standalone "一" with its neighbor otherwise (tone_sandhi.rs::_merge_yi).
func mergeYi(tokens []Token) []Token {
	var newSeg []Token
	for i, t := range tokens {
		word, pos := t.Text, t.POS
		if i >= 1 && word == "一" && i+1 < len(tokens) {
			if tokens[i-1].Text == tokens[i+1].Text && tokens[i-1].POS == "v" && tokens[i+1].POS == "v" {
				if i-1 < len(newSeg) {
					newSeg[i-1].Text = newSeg[i-1].Text + "一" + newSeg[i-1].Text
					continue
				}
			}
		}
		if i >= 2 && tokens[i-1].Text == "一" && tokens[i-2].Text == word && pos == "v" {
			continue
		}
		newSeg = append(newSeg, Token{Text: word, POS: pos})
	}

	var newSeg2 []Token
	for _, t := range newSeg {
		if l := len(newSeg2); l > 0 && newSeg2[l-1].Text == "一" {
			newSeg2[l-1].Text = newSeg2[l-1].Text + t.Text
		} else {
			newSeg2 = append(newSeg2, t)
		}
	}
	return newSeg2
}

// mergeReduplication joins immediately-repeated identical tokens into
// one (tone_sandhi.rs::_merge_reduplication).
func mergeReduplication(tokens []Token) []Token {
	var out []Token
	for _, t := range tokens {
		if l := len(out); l > 0 && out[l-1].Text == t.Text {
			out[l-1].Text += t.Text
		} else {
			out = append(out, t)
		}
	}
	return out
}

// mergeEr absorbs a trailing "儿" token into its preceding word
// (tone_sandhi.rs::_merge_er); "#" is the sentence-start sentinel the
// original guards against, which never appears in this pipeline's token
// stream, so the check is kept only for parity with the source.
func mergeEr(tokens []Token) []Token {
	var out []Token
	for i, t := range tokens {
		if i >= 1 && t.Text == "儿" && tokens[i-1].Text != "#" {
			l := len(out)
			out[l-1].Text += t.Text
		} else {
			out = append(out, t)
		}
	}
	return out
}

// mustNeuralWords is a curated (non-exhaustive) set of words whose final
// syllable always reads neutral tone regardless of its dictionary tone —
// common particles, directionals and word-final function morphemes.
var mustNeuralWords = map[string]bool{
	"们": true, "子": true, "的": true, "了": true, "着": true, "过": true,
	"吧": true, "呢": true, "啊": true, "嘛": true, "吗": true,
	"上": true, "下": true, "里": true, "头": true, "边": true,
	"们儿": true, "家": true, "么": true, "什么": true, "怎么": true,
	"东西": true, "意思": true, "明白": true, "师傅": true, "朋友": true,
	"先生": true, "太太": true, "小姐": true, "老爷": true, "晚上": true,
}

// mustNotNeuralWords overrides mustNeuralWords for homographs that keep
// full tone in specific POS contexts (e.g. 地 as a noun "earth/ground"
// keeps tone4, only the structural particle 地 goes neutral).
var mustNotNeuralWords = map[string]bool{
	"大地": true, "土地": true, "地上": true, "地面": true,
}

// Apply runs the pre-merge pass then, per merged word, looks up its Tone3
// pinyin via pinyinOf and applies bu-sandhi, yi-sandhi, neutral-tone
// sandhi and three-three sandhi in that fixed order
// (tone_sandhi.rs::modified_tone).
func (s *Sandhi) Apply(tokens []Token, pinyinOf func(text string) []string) []Sandhied {
	merged := s.PreMerge(tokens)
	out := make([]Sandhied, len(merged))
	for i, t := range merged {
		finals := append([]string(nil), pinyinOf(t.Text)...)
		finals = buSandhi(t.Text, finals)
		finals = yiSandhi(t.Text, finals)
		finals = neutralSandhi(t.Text, t.POS, finals)
		finals = s.threeSandhi(t.Text, finals)
		out[i] = Sandhied{Text: t.Text, Pinyin: finals}
	}
	return out
}

// buSandhi rewrites 不 within one (possibly pre-merged) word's own
// syllables (tone_sandhi.rs::_bu_sandhi): a pre-merged 3-character
// "X不Y" word reads its middle 不 neutral; otherwise every 不 immediately
// followed by a tone-4 syllable within the word reads tone2.
func buSandhi(word string, finals []string) []string {
	runes := []rune(word)
	if len(runes) == 3 && runes[1] == '不' {
		if len(finals) > 1 {
			finals[1] = pinyin.WithTone(finals[1], 5)
		}
		return finals
	}
	for i, r := range runes {
		if r != '不' || i+1 >= len(runes) || i+1 >= len(finals) {
			continue
		}
		if pinyin.Tone(finals[i+1]) == 4 {
			finals[i] = pinyin.WithTone(finals[i], 2)
		}
	}
	return finals
}

// yiSandhi rewrites 一 within one word's own syllables
// (tone_sandhi.rs::_yi_sandhi): a numeral-literal use (word is entirely
// 一/digits) is left untouched; a pre-merged 3-character "X一X"
// reduplication reads 一 neutral; a "第一" ordinal prefix reads 一 tone1;
// otherwise every other 一 reads tone2 before a tone-4 syllable and tone4
// before anything else.
func yiSandhi(word string, finals []string) []string {
	runes := []rune(word)
	if len(runes) == 0 {
		return finals
	}

	hasYi, allNumeralLiteral := false, true
	for _, r := range runes {
		if r == '一' {
			hasYi = true
			continue
		}
		if !unicode.IsDigit(r) {
			allNumeralLiteral = false
		}
	}
	if hasYi && allNumeralLiteral {
		return finals
	}

	if len(runes) == 3 && runes[1] == '一' && runes[0] == runes[2] {
		if len(finals) > 2 {
			finals[1] = pinyin.WithTone(finals[1], 5)
		}
		return finals
	}
	if strings.HasPrefix(word, "第一") {
		if len(finals) > 2 {
			finals[1] = pinyin.WithTone(finals[1], 1)
		}
		return finals
	}

	for i, r := range runes {
		if r != '一' || i+1 >= len(runes) || i+1 >= len(finals) {
			continue
		}
		if pinyin.Tone(finals[i+1]) == 4 {
			finals[i] = pinyin.WithTone(finals[i], 2)
		} else {
			finals[i] = pinyin.WithTone(finals[i], 4)
		}
	}
	return finals
}

// neutralSandhi rewrites a word's own syllables to neutral tone
// (tone_sandhi.rs::_neural_sandhi): adjacent-identical-character
// reduplication within a verb/adjective/noun, the "个" quantifier
// position, a closed set of suffix particles, and the curated
// must-neural word/suffix lists — checked both against the whole word
// and, via the default subword split, against its two constituent
// subwords.
func neutralSandhi(word, pos string, finals []string) []string {
	runes := []rune(word)
	n := len(runes)
	if n == 0 || len(finals) == 0 {
		return finals
	}
	if mustNotNeuralWords[word] {
		return finals
	}

	for j := 1; j < n; j++ {
		if len(pos) == 0 {
			continue
		}
		if runes[j] == runes[j-1] && isNVA(pos[0]) && !mustNotNeuralWords[word] {
			finals[j] = neutral(finals[j])
		}
	}

	geIdx := -1
	for i, r := range runes {
		if r == '个' {
			geIdx = i
			break
		}
	}

	last := runes[n-1]
	switch {
	case strings.ContainsRune("吧呢哈啊呐噻嘛吖嗨哦哒额滴哩哟喽啰耶喔诶", last):
		finals[len(finals)-1] = neutral(finals[len(finals)-1])
	case strings.ContainsRune("的地得", last):
		finals[len(finals)-1] = neutral(finals[len(finals)-1])
	case n == 1 && strings.Contains("了着过", word) && (pos == "ul" || pos == "uz" || pos == "ug"):
		finals[len(finals)-1] = neutral(finals[len(finals)-1])
	case n > 1 && strings.ContainsRune("们子", last) && (pos == "r" || pos == "n") && !mustNotNeuralWords[word]:
		finals[len(finals)-1] = neutral(finals[len(finals)-1])
	case n > 1 && strings.ContainsRune("上下里", last) && (pos == "s" || pos == "l" || pos == "f"):
		finals[len(finals)-1] = neutral(finals[len(finals)-1])
	case n > 1 && strings.ContainsRune("来去", last) && strings.ContainsRune("上下进出回过起开", runes[n-2]):
		finals[len(finals)-1] = neutral(finals[len(finals)-1])
	case geIdx >= 1 && (unicode.IsDigit(runes[geIdx-1]) || strings.ContainsRune("几有两半多各整每做是", runes[geIdx-1])):
		if geIdx < len(finals) {
			finals[geIdx] = neutral(finals[geIdx])
		}
	case word == "个":
		finals[0] = neutral(finals[0])
	default:
		if mustNeuralWords[word] || (n > 1 && mustNeuralWords[string(runes[n-2:])]) {
			finals[len(finals)-1] = neutral(finals[len(finals)-1])
		}
	}

	first, rest := defaultSplitWord(word)
	applyNeuralSuffix(first, finals, 0)
	if rest != "" {
		applyNeuralSuffix(rest, finals, len([]rune(first)))
	}
	return finals
}

// applyNeuralSuffix rewrites the last syllable of sub (a subword of the
// word neutralSandhi is processing, located at finals[start:start+len(sub)])
// to neutral tone when sub or its trailing two characters match the
// curated must-neural set.
func applyNeuralSuffix(sub string, finals []string, start int) {
	if sub == "" {
		return
	}
	runes := []rune(sub)
	end := start + len(runes)
	if end > len(finals) || end <= start {
		return
	}
	if mustNeuralWords[sub] || (len(runes) > 1 && mustNeuralWords[string(runes[len(runes)-2:])]) {
		finals[end-1] = neutral(finals[end-1])
	}
}

func isNVA(b byte) bool { return b == 'n' || b == 'v' || b == 'a' }

// neutral forces a Tone3 syllable to tone 5 (neutral).
func neutral(final string) string { return pinyin.WithTone(final, 5) }

// allTone3 reports whether every syllable in finals carries tone 3.
func allTone3(finals []string) bool {
	for _, f := range finals {
		if pinyin.Tone(f) != 3 {
			return false
		}
	}
	return true
}

// threeSandhi applies third-tone sandhi within one word's own syllables
// (tone_sandhi.rs::_three_sandhi): a 2-character all-tone-3 word reads
// its first syllable tone2; a 3-character word re-splits via SplitWord
// and rewrites either both leading syllables (2+1 split) or just the
// second (1+2 split) when the whole word is tone3, or else checks the
// boundary between the two subwords; a 4-character word splits 2+2 and
// independently rewrites each half's leading syllable when that half is
// entirely tone3.
func (s *Sandhi) threeSandhi(word string, finals []string) []string {
	if len(finals) == 0 {
		return finals
	}
	runes := []rune(word)
	switch len(runes) {
	case 2:
		if allTone3(finals) {
			finals[0] = pinyin.WithTone(finals[0], 2)
		}
	case 3:
		split := s.SplitWord
		if split == nil {
			split = defaultSplitWord
		}
		first, _ := split(word)
		w0Len := len([]rune(first))
		if allTone3(finals) {
			if w0Len == 2 && len(finals) >= 2 {
				finals[0] = pinyin.WithTone(finals[0], 2)
				finals[1] = pinyin.WithTone(finals[1], 2)
			} else if w0Len == 1 && len(finals) >= 2 {
				finals[1] = pinyin.WithTone(finals[1], 2)
			}
		} else if w0Len > 0 && w0Len < len(finals) {
			left, right := finals[:w0Len], finals[w0Len:]
			if allTone3(left) && len(left) == 2 {
				left[0] = pinyin.WithTone(left[0], 2)
			} else if len(right) > 0 && !allTone3(right) {
				if pinyin.Tone(right[0]) == 3 && pinyin.Tone(left[len(left)-1]) == 3 {
					left[len(left)-1] = pinyin.WithTone(left[len(left)-1], 2)
				}
			}
		}
	case 4:
		if len(finals) >= 4 {
			left, right := finals[:2], finals[2:]
			if allTone3(left) {
				left[0] = pinyin.WithTone(left[0], 2)
			}
			if allTone3(right) {
				right[0] = pinyin.WithTone(right[0], 2)
			}
		}
	}
	return finals
}

// IsNeutralCandidate reports whether word looks like a light/neutral-tone
// suffix purely from its surface form, independent of POS. Nothing in this
// module calls it.
func IsNeutralCandidate(word string) bool {
	if mustNeuralWords[word] {
		return true
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return false
	}
	return mustNeuralWords[string(runes[len(runes)-1])]
}
