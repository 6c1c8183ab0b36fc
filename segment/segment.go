// Package segment splits mixed Chinese/English text into language-
// tagged spans and re-chunks long spans to a maximum character budget,
// grounded on text_utils.rs's LangSegment/TextUtils.
package segment

import (
	"regexp"
	"strings"
)

// Lang is a detected span's language tag.
type Lang string

const (
	CN Lang = "CN"
	EN Lang = "EN"
)

// Span is one contiguous run of text tagged with its detected language.
type Span struct {
	Lang Lang
	Text string
}

// Segmenter splits text into language-tagged spans and chunks.
type Segmenter struct{}

// New constructs a Segmenter. It holds no state.
func New() *Segmenter { return &Segmenter{} }

// Segment classifies every rune of text as CN (Han script) or EN (ASCII
// letters and digits); any other rune joins the open span, or opens an EN
// span at the start of text. Adjacent same-tag runs merge into spans, in
// original order. A
// punctuation run between two same-language spans stays attached to the
// preceding span rather than starting a new one, since it carries no
// language signal of its own.
func (sg *Segmenter) Segment(text string) []Span {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	var spans []Span
	var current strings.Builder
	currentLang := Lang("")

	flush := func() {
		if current.Len() > 0 {
			spans = append(spans, Span{Lang: currentLang, Text: current.String()})
			current.Reset()
		}
	}

	for _, r := range runes {
		lang := classify(r)
		if lang == "" {
			// Punctuation/whitespace: attach to the current span if one
			// is open, otherwise defer until the next lettered rune
			// decides the span's language.
			if current.Len() > 0 {
				current.WriteRune(r)
				continue
			}
			lang = currentLang
			if lang == "" {
				lang = EN
			}
		}
		if lang != currentLang && current.Len() > 0 {
			flush()
		}
		currentLang = lang
		current.WriteRune(r)
	}
	flush()
	return spans
}

func classify(r rune) Lang {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF, r >= 0x3400 && r <= 0x4DBF:
		return CN
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
		return EN
	default:
		return ""
	}
}

var reAZRange = regexp.MustCompile(`([A-Z])-([A-Z])`)
var reAZDigit = regexp.MustCompile(`([A-Z])-([0-9])`)

// Refine rewrites "A-B" letter ranges and "A-9" letter-digit pairs within
// an EN span ("A to B", "A 9"); spans of any other language are not
// rewritten (CN spans from Segment hold no Latin letters). It also prepends a lead-in punctuation token to a re-segmented chunk that
// doesn't already start with a digit, so the first sub-span of a split
// sentence isn't mistaken by the BERT tokenizer for a document start.
func (sg *Segmenter) Refine(spans []Span) []Span {
	out := make([]Span, len(spans))
	for i, s := range spans {
		text := s.Text
		if s.Lang == EN {
			text = reAZRange.ReplaceAllString(text, "$1 to $2")
			text = reAZDigit.ReplaceAllString(text, "$1 $2")
		}
		if i > 0 && text != "" {
			r := []rune(text)[0]
			if r < '0' || r > '9' {
				if s.Lang == CN {
					text = "。" + text
				} else {
					text = ". " + text
				}
			}
		}
		out[i] = Span{Lang: s.Lang, Text: text}
	}
	return out
}
