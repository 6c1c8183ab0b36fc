package runtime

import (
	"context"
	"fmt"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/errs"
)

// GraphPaths names the six ONNX graph files spec.md §6.1 requires.
type GraphPaths struct {
	Bert          string
	SSL           string
	VQPrompt      string
	T2SFirstStage string
	T2SStage      string
	Vocoder       string
}

// session pairs a graph's session handle with its declared output count,
// since DynamicAdvancedSession doesn't expose its output names back.
type session struct {
	handle     *ort.DynamicAdvancedSession
	numOutputs int
}

// ONNXRuntime implements TensorRuntime over github.com/yalue/onnxruntime_go,
// one DynamicAdvancedSession per graph so each can be run independently
// with its own input/output name set.
type ONNXRuntime struct {
	bert          session
	ssl           session
	vqPrompt      session
	t2sFirstStage session
	t2sStage      session
	vocoder       session
}

// NewONNXRuntime initializes the ONNX Runtime shared library (once, the
// first runtime constructed in the process does this) and opens a
// session per graph in paths.
func NewONNXRuntime(sharedLibPath string, paths GraphPaths) (*ONNXRuntime, error) {
	if sharedLibPath != "" {
		ort.SetSharedLibraryPath(sharedLibPath)
	}
	// InitializeEnvironment is safe to call once per process; a second
	// call from a prior ONNXRuntime instance returns an error we ignore.
	_ = ort.InitializeEnvironment()

	r := &ONNXRuntime{}
	var err error
	if r.bert, err = newSession(paths.Bert, []string{"input_ids", "attention_mask", "token_type_ids"}, []string{"hidden_states"}); err != nil {
		return nil, err
	}
	if r.ssl, err = newSession(paths.SSL, []string{"wav16k"}, []string{"output"}); err != nil {
		return nil, err
	}
	if r.vqPrompt, err = newSession(paths.VQPrompt, []string{"ssl_content"}, []string{"output"}); err != nil {
		return nil, err
	}
	if r.t2sFirstStage, err = newSession(paths.T2SFirstStage,
		[]string{"all_phoneme_ids", "bert", "prompt", "top_k", "temperature"},
		[]string{"y", "k", "v", "y_emb"}); err != nil {
		return nil, err
	}
	if r.t2sStage, err = newSession(paths.T2SStage,
		[]string{"y", "k", "v", "y_emb", "xy_attn_mask", "top_k", "temperature"},
		[]string{"o_k", "o_v", "o_y_emb", "logits", "samples"}); err != nil {
		return nil, err
	}
	if r.vocoder, err = newSession(paths.Vocoder, []string{"pred_semantic", "text", "org_audio", "hann_window", "refer_mask", "y_lengths", "text_lengths"}, []string{"audio"}); err != nil {
		return nil, err
	}
	return r, nil
}

func newSession(path string, inputs, outputs []string) (session, error) {
	if path == "" {
		return session{}, nil
	}
	s, err := ort.NewDynamicAdvancedSession(path, inputs, outputs, nil)
	if err != nil {
		return session{}, fmt.Errorf("%w: onnx session %s: %v", errs.ErrResourceLoad, path, err)
	}
	return session{handle: s, numOutputs: len(outputs)}, nil
}

func toShape(dims []int64) ort.Shape {
	return ort.NewShape(dims...)
}

func runOne(ctx context.Context, sess session, inputs []Tensor) ([]Tensor, error) {
	if sess.handle == nil {
		return nil, fmt.Errorf("%w: graph not loaded", errs.ErrInference)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inValues := make([]ort.Value, len(inputs))
	for i, in := range inputs {
		var v ort.Value
		var err error
		if in.Dtype == "int64" {
			v, err = ort.NewTensor(toShape(in.Shape), in.Int64)
		} else {
			v, err = ort.NewTensor(toShape(in.Shape), in.Data)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: input tensor %d: %v", errs.ErrInference, i, err)
		}
		defer v.Destroy()
		inValues[i] = v
	}

	outValues := make([]ort.Value, sess.numOutputs)
	if err := sess.handle.Run(inValues, outValues); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInference, err)
	}
	defer func() {
		for _, v := range outValues {
			if v != nil {
				v.Destroy()
			}
		}
	}()

	results := make([]Tensor, len(outValues))
	for i, v := range outValues {
		switch t := v.(type) {
		case *ort.Tensor[float32]:
			data := append([]float32(nil), t.GetData()...)
			shape := append([]int64(nil), t.GetShape()...)
			results[i] = F32(shape, data)
		case *ort.Tensor[int64]:
			data := append([]int64(nil), t.GetData()...)
			shape := append([]int64(nil), t.GetShape()...)
			results[i] = I64(shape, data)
		default:
			return nil, fmt.Errorf("%w: output %d has unsupported tensor type", errs.ErrInference, i)
		}
	}
	return results, nil
}

// Bert implements TensorRuntime.
func (r *ONNXRuntime) Bert(ctx context.Context, inputIDs, attentionMask, tokenTypeIDs Tensor) (Tensor, error) {
	out, err := runOne(ctx, r.bert, []Tensor{inputIDs, attentionMask, tokenTypeIDs})
	if err != nil {
		return Tensor{}, err
	}
	return out[0], nil
}

// SSL implements TensorRuntime.
func (r *ONNXRuntime) SSL(ctx context.Context, refWav Tensor) (Tensor, error) {
	out, err := runOne(ctx, r.ssl, []Tensor{refWav})
	if err != nil {
		return Tensor{}, err
	}
	return out[0], nil
}

// VQPrompt implements TensorRuntime.
func (r *ONNXRuntime) VQPrompt(ctx context.Context, sslEmbedding Tensor) (Tensor, error) {
	out, err := runOne(ctx, r.vqPrompt, []Tensor{sslEmbedding})
	if err != nil {
		return Tensor{}, err
	}
	return out[0], nil
}

// T2SFirstStage implements TensorRuntime.
func (r *ONNXRuntime) T2SFirstStage(ctx context.Context, allPhonemeIDs, bertFeature, promptSemantic, topK, temperature Tensor) (Tensor, []Tensor, error) {
	out, err := runOne(ctx, r.t2sFirstStage, []Tensor{allPhonemeIDs, bertFeature, promptSemantic, topK, temperature})
	if err != nil {
		return Tensor{}, nil, err
	}
	return out[0], out[1:], nil
}

// T2SStage implements TensorRuntime.
func (r *ONNXRuntime) T2SStage(ctx context.Context, y Tensor, state []Tensor, xyAttnMask, topK, temperature Tensor) (Tensor, Tensor, []Tensor, error) {
	inputs := append([]Tensor{y}, state...)
	inputs = append(inputs, xyAttnMask, topK, temperature)
	out, err := runOne(ctx, r.t2sStage, inputs)
	if err != nil {
		return Tensor{}, Tensor{}, nil, err
	}
	// out is [o_k, o_v, o_y_emb, logits, samples].
	return out[3], out[4], out[:3], nil
}

// Vocoder implements TensorRuntime.
func (r *ONNXRuntime) Vocoder(ctx context.Context, predSemantic Tensor, cond VocoderConditioning) (Tensor, error) {
	out, err := runOne(ctx, r.vocoder, []Tensor{
		predSemantic, cond.Text, cond.RefAudio, cond.HannWindow, cond.ReferMask, cond.YLengths, cond.TextLengths,
	})
	if err != nil {
		return Tensor{}, err
	}
	return out[0], nil
}

// Close destroys every open session.
func (r *ONNXRuntime) Close() error {
	sessions := []session{r.bert, r.ssl, r.vqPrompt, r.t2sFirstStage, r.t2sStage, r.vocoder}
	var firstErr error
	for _, s := range sessions {
		if s.handle == nil {
			continue
		}
		if err := s.handle.Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
