package segment

import "strings"

// Chunker implements the exact two-pass sentence-batching algorithm from
// text_utils.rs: cut3 splits on Chinese full stops, then further on
// commas for any segment still over maxChars; cut2 greedily re-merges
// adjacent segments back up to maxChars; a final pass folds any segment
// shorter than mergeThreshold into its neighbor so trailing fragments
// don't end up as their own tiny inference batch.
type Chunker struct {
	MaxChars        int
	MergeThreshold  int
}

// NewChunker constructs a Chunker with the defaults text_utils.rs uses:
// a 50-character batch budget and a 5-character short-segment floor.
func NewChunker() *Chunker {
	return &Chunker{MaxChars: 50, MergeThreshold: 5}
}

// Cut runs cut3 -> cut2 -> merge-short-text-in-array in sequence and
// returns the final chunk list.
func (c *Chunker) Cut(text string) []string {
	segments := c.cut3(text)
	merged := c.cut2(segments)
	return c.mergeShortTextInArray(merged)
}

// cut3 splits text on "。"/"！"/"？" first; any resulting segment still
// longer than MaxChars is further split on "，"/","。
func (c *Chunker) cut3(text string) []string {
	sentences := splitKeepDelim(text, []rune{'。', '！', '？'})
	var out []string
	for _, sent := range sentences {
		if runeLen(sent) <= c.MaxChars {
			out = append(out, sent)
			continue
		}
		split := splitKeepDelim(sent, []rune{'，', ','})
		if len(split) == 1 {
			// No comma to split on (for instance a long English-only
			// run) — fall back to sentence/word chunking.
			out = append(out, ChunkifyLatin(sent, c.MaxChars)...)
			continue
		}
		out = append(out, split...)
	}
	return out
}

// cut2 greedily re-merges adjacent segments so each resulting chunk is
// as close to MaxChars as possible without exceeding it.
func (c *Chunker) cut2(segments []string) []string {
	var out []string
	var current strings.Builder
	for _, seg := range segments {
		if current.Len() == 0 {
			current.WriteString(seg)
			continue
		}
		candidate := current.String() + seg
		if runeLen(candidate) <= c.MaxChars {
			current.Reset()
			current.WriteString(candidate)
		} else {
			out = append(out, current.String())
			current.Reset()
			current.WriteString(seg)
		}
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

// mergeShortTextInArray folds any chunk shorter than MergeThreshold
// characters into the following chunk (or the preceding one, if it's
// last), so a trailing one- or two-character fragment never becomes its
// own inference batch.
func (c *Chunker) mergeShortTextInArray(chunks []string) []string {
	if len(chunks) <= 1 {
		return chunks
	}
	var out []string
	pending := ""
	for _, chunk := range chunks {
		merged := pending + chunk
		if runeLen(merged) < c.MergeThreshold {
			pending = merged
			continue
		}
		out = append(out, merged)
		pending = ""
	}
	if pending != "" {
		if len(out) > 0 {
			out[len(out)-1] += pending
		} else {
			out = append(out, pending)
		}
	}
	return out
}

// splitKeepDelim splits text at any rune in delims, keeping the
// delimiter attached to the end of the preceding piece.
func splitKeepDelim(text string, delims []rune) []string {
	isDelim := func(r rune) bool {
		for _, d := range delims {
			if r == d {
				return true
			}
		}
		return false
	}
	var out []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if isDelim(r) {
			out = append(out, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}
