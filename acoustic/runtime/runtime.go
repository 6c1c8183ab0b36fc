// Package runtime defines the tensor-execution boundary the acoustic
// decode loop is built against (spec.md §6.1's TensorRuntime), and an
// ONNX Runtime-backed implementation via github.com/yalue/onnxruntime_go,
// the binding independently used across the retrieval pack's ONNX
// examples (becomeliminal-nim-go-sdk, Tejas242-sift, themobileprof-
// clipilot, mcpmydocs).
package runtime

import "context"

// Tensor is a shaped float32/int64 buffer passed across the
// TensorRuntime boundary. Dtype is one of "float32" or "int64"; Data
// holds the flat buffer of a float32 tensor and Int64 that of an int64
// tensor.
type Tensor struct {
	Shape []int64
	Data  []float32
	Int64 []int64
	Dtype string
}

// F32 constructs a float32 Tensor.
func F32(shape []int64, data []float32) Tensor {
	return Tensor{Shape: shape, Data: data, Dtype: "float32"}
}

// I64 constructs an int64 Tensor.
func I64(shape []int64, data []int64) Tensor {
	return Tensor{Shape: shape, Int64: data, Dtype: "int64"}
}

// VocoderConditioning bundles the auxiliary tensors the vocoder graph
// conditions on besides the predicted semantic-token sequence itself:
// the target text's phoneme ids, the reference recording resampled to
// 32kHz, its Hann analysis window, an attention mask over the
// reference frame count, and the semantic/text length scalars.
type VocoderConditioning struct {
	Text        Tensor
	RefAudio    Tensor
	HannWindow  Tensor
	ReferMask   Tensor
	YLengths    Tensor
	TextLengths Tensor
}

// TensorRuntime is the six-graph execution surface spec.md §6.1 names:
// bert, ssl, vq_prompt, t2s_first_stage, t2s_stage and vocoder. Each
// method runs exactly one ONNX graph and returns its output tensor(s).
//
// State is the t2s graphs' opaque KV-cache tuple, always ordered
// [k, v, y_emb] on both the way in and the way out, matching the
// (k, v, y_emb) / (o_k, o_v, o_y_emb) input/output triples §6.1 names.
type TensorRuntime interface {
	// Bert runs the BERT conditioning graph over token ids, attention
	// mask and token-type ids, returning the last-hidden-state tensor
	// [1, T, H].
	Bert(ctx context.Context, inputIDs, attentionMask, tokenTypeIDs Tensor) (Tensor, error)
	// SSL runs the self-supervised speech encoder over a reference
	// waveform, returning a content-style embedding sequence.
	SSL(ctx context.Context, refWav Tensor) (Tensor, error)
	// VQPrompt quantizes an SSL embedding sequence into the discrete
	// semantic-token prompt the AR decoder conditions on.
	VQPrompt(ctx context.Context, sslEmbedding Tensor) (Tensor, error)
	// T2SFirstStage runs the first autoregressive step, priming the
	// decoder's internal state from the text/bert conditioning and the
	// semantic prompt, returning the seeded token sequence y and the
	// initial [k, v, y_emb] state.
	T2SFirstStage(ctx context.Context, allPhonemeIDs, bertFeature, promptSemantic, topK, temperature Tensor) (y Tensor, state []Tensor, err error)
	// T2SStage runs one subsequent autoregressive decode step given the
	// growing token sequence y, the current [k, v, y_emb] state and the
	// step's xy attention mask, returning the step's logits (for
	// EOS-termination comparison), the sampled token to append to y,
	// and the updated [o_k, o_v, o_y_emb] state.
	T2SStage(ctx context.Context, y Tensor, state []Tensor, xyAttnMask, topK, temperature Tensor) (logits, samples Tensor, nextState []Tensor, err error)
	// Vocoder renders a predicted semantic-token sequence, conditioned
	// on the target text and the reference recording's spectral window,
	// into a waveform tensor [1, 1, N].
	Vocoder(ctx context.Context, predSemantic Tensor, cond VocoderConditioning) (Tensor, error)
	// Close releases every underlying ONNX session.
	Close() error
}
