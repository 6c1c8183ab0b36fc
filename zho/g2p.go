// Package zho implements Chinese grapheme-to-phoneme conversion: text
// cleanup, number verbalization, word segmentation, pinyin lookup, tone
// sandhi, and projection onto the closed phoneme alphabet, grounded on
// text/chinese.rs.
package zho

import (
	"fmt"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/numnorm"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/pinyin"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/symbols"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/tonesandhi"
)

// G2P converts Chinese sentences into phoneme symbol sequences aligned
// with a word2ph expansion table for downstream BERT conditioning.
type G2P struct {
	seg    *Segmenter
	py     *pinyin.Engine
	sandhi *tonesandhi.Sandhi
	num    *numnorm.Normalizer
}

// New constructs a G2P. dictDir is forwarded to the gojieba segmenter
// (empty uses the XDG default).
func New(dictDir string) (*G2P, error) {
	seg, err := NewSegmenter(dictDir)
	if err != nil {
		return nil, err
	}
	return &G2P{
		seg:    seg,
		py:     pinyin.NewEngine(),
		sandhi: tonesandhi.New(),
		num:    numnorm.NewNormalizer(),
	}, nil
}

// Close releases the underlying segmenter resources.
func (g *G2P) Close() error { return g.seg.Close() }

// Result is one sentence's G2P output: the flat phoneme symbol sequence
// and the word2ph table mapping each original input character (from the
// cleaned, post-normalization text) to the count of phoneme symbols it
// produced, which BertConditioner uses to expand per-token hidden states
// into per-phoneme rows.
type Result struct {
	Phonemes []string
	Word2Ph  []int
}

// Convert runs the full pipeline over one sentence of Chinese text:
// special-symbol passthrough, punctuation normalization, number
// verbalization, jieba segmentation with POS tags, pinyin lookup, tone
// sandhi, and phoneme-symbol projection.
func (g *G2P) Convert(text string) (Result, error) {
	cleaned := applyRepMap(text)
	cleaned = g.num.Normalize(cleaned)

	segWords, err := g.seg.Cut(cleaned)
	if err != nil {
		return Result{}, fmt.Errorf("zho g2p: %w", err)
	}

	pinyinOf := func(t string) []string { return g.py.First(t, pinyin.Tone3) }

	var result Result
	var run []tonesandhi.Token
	flushRun := func() {
		if len(run) == 0 {
			return
		}
		for _, sw := range g.sandhi.Apply(run, pinyinOf) {
			for _, syl := range sw.Pinyin {
				phones := ToPhonemeSymbols(syl)
				result.Phonemes = append(result.Phonemes, phones...)
				result.Word2Ph = append(result.Word2Ph, len(phones))
			}
		}
		run = run[:0]
	}

	for _, sw := range segWords {
		if !hasHan(sw.Text) {
			flushRun()
			if sw.Text == "SP2" || sw.Text == "SP3" {
				result.Phonemes = append(result.Phonemes, sw.Text)
				result.Word2Ph = append(result.Word2Ph, 1)
				continue
			}
			for _, r := range sw.Text {
				sym := punctuationSymbol(string(r))
				result.Phonemes = append(result.Phonemes, sym)
				result.Word2Ph = append(result.Word2Ph, 1)
			}
			continue
		}
		run = append(run, tonesandhi.Token{Text: sw.Text, POS: sw.POS})
	}
	flushRun()
	return result, nil
}

func hasHan(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}

// punctuationSymbol maps a non-Han character to its closed-alphabet
// punctuation symbol (whitespace reads "."); any other symbol of the
// closed alphabet is returned as is, and anything else becomes UNK.
func punctuationSymbol(s string) string {
	switch s {
	case "!", "?", "…", ",", ".", "-":
		return s
	case "SP2", "SP3":
		return s
	case " ", "\t", "\n":
		return "."
	default:
		if symbols.Contains(s) {
			return s
		}
		return "UNK"
	}
}
