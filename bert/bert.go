// Package bert builds the per-phoneme BERT conditioning matrix the
// acoustic decode loop attends over, grounded on
// bert_utils.rs::get_bert_features.
package bert

import (
	"context"
	"fmt"

	"github.com/daulet/tokenizers"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/acoustic/runtime"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/errs"
)

// Conditioner runs the BERT graph over a sentence's Han spans and
// expands its per-token hidden states into a per-phoneme matrix via a
// word2ph table, zero-filling the rows belonging to non-Chinese spans.
type Conditioner struct {
	tok *tokenizers.Tokenizer
	rt  runtime.TensorRuntime
}

// New loads tokenizer.json from tokenizerPath and wires rt as the BERT
// graph's execution backend.
func New(tokenizerPath string, rt runtime.TensorRuntime) (*Conditioner, error) {
	tok, err := tokenizers.FromFile(tokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: bert tokenizer %s: %v", errs.ErrResourceLoad, tokenizerPath, err)
	}
	return &Conditioner{tok: tok, rt: rt}, nil
}

// Close releases the tokenizer.
func (c *Conditioner) Close() error {
	if c.tok != nil {
		c.tok.Close()
	}
	return nil
}

// HiddenSize is the BERT graph's hidden dimension (Chinese RoBERTa-style
// conditioning models used by the reference pipeline are 1024-wide).
const HiddenSize = 1024

// Features computes the [len(word2ph sum), HiddenSize] conditioning
// matrix for one Chinese span: text is the original (pre-G2P) span,
// word2ph gives the phoneme count each rune of text expanded to.
func (c *Conditioner) Features(ctx context.Context, text string, word2ph []int) ([][]float32, error) {
	// Encode's second result is the token strings; it reports no error.
	ids, _ := c.tok.Encode(text, false)
	inputIDs := make([]int64, len(ids)+2)
	inputIDs[0] = 101 // [CLS]
	for i, id := range ids {
		inputIDs[i+1] = int64(id)
	}
	inputIDs[len(ids)+1] = 102 // [SEP]

	attention := make([]int64, len(inputIDs))
	for i := range attention {
		attention[i] = 1
	}
	// Single-segment input: token_type_ids is all zeros.
	tokenType := make([]int64, len(inputIDs))

	idsTensor := runtime.I64([]int64{1, int64(len(inputIDs))}, inputIDs)
	attnTensor := runtime.I64([]int64{1, int64(len(attention))}, attention)
	tokenTypeTensor := runtime.I64([]int64{1, int64(len(tokenType))}, tokenType)

	hidden, err := c.rt.Bert(ctx, idsTensor, attnTensor, tokenTypeTensor)
	if err != nil {
		return nil, fmt.Errorf("bert features: %w", err)
	}

	// hidden.Shape is [1, T, H]; slice off the [CLS]/[SEP] rows, leaving
	// exactly len(ids) rows, one per wordpiece token.
	seqLen := int(hidden.Shape[1])
	h := int(hidden.Shape[2])
	if seqLen < 2 {
		return nil, fmt.Errorf("bert features: sequence too short: %d", seqLen)
	}
	perToken := make([][]float32, seqLen-2)
	for t := 0; t < seqLen-2; t++ {
		row := make([]float32, h)
		offset := (t + 1) * h
		copy(row, hidden.Data[offset:offset+h])
		perToken[t] = row
	}

	if len(perToken) != len(word2ph) {
		return nil, fmt.Errorf("bert features: token/word2ph length mismatch: %d vs %d", len(perToken), len(word2ph))
	}

	var expanded [][]float32
	for i, count := range word2ph {
		for n := 0; n < count; n++ {
			expanded = append(expanded, perToken[i])
		}
	}
	return expanded, nil
}

// ZeroFill returns a [n, HiddenSize] all-zero matrix, the conditioning
// contribution for a non-Chinese span, which carries no BERT signal.
func ZeroFill(n int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = make([]float32, HiddenSize)
	}
	return out
}

// Concat joins per-span feature matrices along the phoneme axis (axis
// 1 in bert_utils.rs's tensor-shaped concatenation; here the rows are
// already flattened to one matrix per span, so this is a row-wise
// append).
func Concat(spans ...[][]float32) [][]float32 {
	var out [][]float32
	for _, s := range spans {
		out = append(out, s...)
	}
	return out
}
