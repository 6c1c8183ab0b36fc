// Package acoustic runs the autoregressive semantic-token decode loop
// and final vocoder pass, grounded on bert_utils.rs::wav_maker and
// structured after the prefill/per-step KV-cache pattern in
// CWBudde-go-pocket-tts's internal/onnx/generate.go.
package acoustic

import (
	"context"
	"fmt"
	"math"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/acoustic/runtime"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/errs"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/logging"
)

// eosCode is the semantic-token vocabulary size; the decoder emits it
// as a sentinel to mark the end of the sequence.
const eosCode = 1024

// Config holds the AR decode loop's sampling and framing parameters.
type Config struct {
	TopK        int64
	Temperature float32
	MaxSteps    int
	HopLength   int
	WinLength   int
}

// DefaultConfig matches wav_maker's hard-coded constants.
func DefaultConfig() Config {
	return Config{
		TopK:        20,
		Temperature: 0.8,
		MaxSteps:    1500,
		HopLength:   640,
		WinLength:   2048,
	}
}

// Loop drives one sentence's acoustic synthesis over a TensorRuntime.
type Loop struct {
	rt  runtime.TensorRuntime
	cfg Config
}

// New builds a Loop over rt using cfg. A cfg whose MaxSteps is zero is
// replaced as a whole by DefaultConfig; any other cfg is used as given,
// and none of its other zero fields is filled in.
func New(rt runtime.TensorRuntime, cfg Config) *Loop {
	if cfg.MaxSteps == 0 {
		d := DefaultConfig()
		cfg = d
	}
	return &Loop{rt: rt, cfg: cfg}
}

// Input bundles everything one sentence's synthesis pass needs:
// reference-speaker conditioning (both sample rates the SSL and
// vocoder graphs expect), the concatenated prompt+text BERT features
// and phoneme ids, and the text-only phoneme ids the vocoder aligns
// duration against.
type Input struct {
	RefWav16k         []float32
	RefWav32k         []float32
	PromptBertFeature [][]float32 // [T_prompt][H]
	TextBertFeature   [][]float32 // [T_text][H]
	PromptPhonemeIDs  []int64
	TextPhonemeIDs    []int64
}

// Synthesize runs SSL -> VQPrompt -> T2S first stage -> up-to-MaxSteps
// AR decode steps -> vocoder, returning 16-bit PCM samples.
func (l *Loop) Synthesize(ctx context.Context, in Input) ([]int16, error) {
	sslTensor := runtime.F32([]int64{1, int64(len(in.RefWav16k))}, in.RefWav16k)
	ssl, err := l.rt.SSL(ctx, sslTensor)
	if err != nil {
		return nil, fmt.Errorf("%w: ssl: %v", errs.ErrInference, err)
	}

	promptSemantic, err := l.rt.VQPrompt(ctx, ssl)
	if err != nil {
		return nil, fmt.Errorf("%w: vq prompt: %v", errs.ErrInference, err)
	}

	bertTensor := concatBertFeature(in.PromptBertFeature, in.TextBertFeature)

	allPhonemeIDs := make([]int64, 0, len(in.PromptPhonemeIDs)+len(in.TextPhonemeIDs))
	allPhonemeIDs = append(allPhonemeIDs, in.PromptPhonemeIDs...)
	allPhonemeIDs = append(allPhonemeIDs, in.TextPhonemeIDs...)
	allPhonemeTensor := runtime.I64([]int64{1, int64(len(allPhonemeIDs))}, allPhonemeIDs)
	textTensor := runtime.I64([]int64{1, int64(len(in.TextPhonemeIDs))}, in.TextPhonemeIDs)

	topK := runtime.I64([]int64{1}, []int64{l.cfg.TopK})
	temperature := runtime.F32([]int64{1}, []float32{l.cfg.Temperature})

	y, state, err := l.rt.T2SFirstStage(ctx, allPhonemeTensor, bertTensor, promptSemantic, topK, temperature)
	if err != nil {
		return nil, fmt.Errorf("%w: t2s first stage: %v", errs.ErrInference, err)
	}
	if len(y.Int64) == 0 {
		return nil, fmt.Errorf("%w: t2s first stage returned no seed token", errs.ErrInference)
	}

	lPhoneme := int64(len(allPhonemeIDs))
	var generated []int64
	loopRan := 0

	for step := 1; step <= l.cfg.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Grow the attention mask by appending a zero column to the
		// y-side block and concatenating with the zero matrix over
		// phonemes, then lift to a 4-D [1,1,Lx,Ly] mask.
		ly := int64(len(y.Int64))
		xyAttnMask := buildXYAttnMask(lPhoneme, ly)

		logits, samples, nextState, err := l.rt.T2SStage(ctx, y, state, xyAttnMask, topK, temperature)
		if err != nil {
			return nil, fmt.Errorf("%w: t2s stage %d: %v", errs.ErrInference, step, err)
		}
		if len(samples.Int64) == 0 {
			return nil, fmt.Errorf("%w: t2s stage %d returned no token", errs.ErrInference, step)
		}
		token := samples.Int64[0]
		generated = append(generated, token)
		y = runtime.I64([]int64{1, ly + 1}, append(append([]int64{}, y.Int64...), token))
		state = nextState
		loopRan = step

		eos := token == eosCode
		if len(logits.Int64) > 0 && logits.Int64[0] == eosCode {
			eos = true
		}
		if eos {
			break
		}
	}

	if loopRan == 0 || len(generated) == 0 {
		return nil, fmt.Errorf("%w: decode loop produced no frames", errs.ErrInference)
	}
	logging.GetLogger().Debug().Int("steps", loopRan).Msg("acoustic decode loop finished")

	// The final emitted token (the EOS sentinel, unless the loop stopped
	// at MaxSteps) is zeroed in place, as wav_maker does, rather than
	// dropped before handing the sequence to the vocoder.
	generated[len(generated)-1] = 0

	predSemantic := runtime.I64([]int64{1, 1, int64(len(generated))}, generated)

	yLen := int64(len(generated) * 2)
	frameCount := (len(in.RefWav32k)-l.cfg.HopLength)/l.cfg.HopLength + 1
	if frameCount < 0 {
		frameCount = 0
	}
	referMask := make([]float32, len(generated)*frameCount)
	for i := range referMask {
		referMask[i] = 1
	}

	cond := runtime.VocoderConditioning{
		Text:        textTensor,
		RefAudio:    runtime.F32([]int64{1, int64(len(in.RefWav32k))}, in.RefWav32k),
		HannWindow:  runtime.F32([]int64{int64(l.cfg.WinLength)}, hanning(l.cfg.WinLength)),
		ReferMask:   runtime.F32([]int64{1, int64(len(generated)), int64(frameCount)}, referMask),
		YLengths:    runtime.I64([]int64{1}, []int64{yLen}),
		TextLengths: runtime.I64([]int64{1}, []int64{int64(len(in.TextPhonemeIDs))}),
	}

	audio, err := l.rt.Vocoder(ctx, predSemantic, cond)
	if err != nil {
		return nil, fmt.Errorf("%w: vocoder: %v", errs.ErrInference, err)
	}
	return normalizeToPCM16(audio.Data), nil
}

// concatBertFeature lays prompt then text feature rows into a single
// [1, H, T] tensor (feature-dim-major, the orientation the BERT
// conditioning graph expects).
func concatBertFeature(prompt, text [][]float32) runtime.Tensor {
	rows := append(append([][]float32{}, prompt...), text...)
	if len(rows) == 0 {
		return runtime.F32([]int64{1, bertHiddenSize, 0}, nil)
	}
	h := len(rows[0])
	data := make([]float32, h*len(rows))
	for t, row := range rows {
		for d, v := range row {
			data[d*len(rows)+t] = v
		}
	}
	return runtime.F32([]int64{1, int64(h), int64(len(rows))}, data)
}

const bertHiddenSize = 1024

// buildXYAttnMask grows the decode step's attention bias: a zero column
// appended to the y-side block, concatenated with the all-zero matrix
// over the lPhoneme text/prompt axis, lifted to the 4-D [1,1,Lx,Ly]
// shape the t2s_stage graph expects.
func buildXYAttnMask(lPhoneme, ly int64) runtime.Tensor {
	return runtime.F32([]int64{1, 1, lPhoneme, ly}, make([]float32, lPhoneme*ly))
}

// hanning reproduces bert_utils.rs::hanning's symmetric window.
func hanning(m int) []float32 {
	if m < 1 {
		return nil
	}
	if m == 1 {
		return []float32{1}
	}
	out := make([]float32, 0, m)
	for x := 1 - m; x < m; x += 2 {
		v := 0.5 + 0.5*math.Cos(math.Pi*float64(x)/float64(m-1))
		out = append(out, float32(v))
	}
	return out
}

// normalizeToPCM16 rescales the vocoder's float waveform into signed
// 16-bit samples, clipping by the observed peak when it exceeds unity.
func normalizeToPCM16(audio []float32) []int16 {
	var maxAbs float32
	for _, v := range audio {
		if a := float32(math.Abs(float64(v))); a > maxAbs {
			maxAbs = a
		}
	}
	out := make([]int16, len(audio))
	if maxAbs > 1.0 {
		for i, v := range audio {
			out[i] = int16((v / maxAbs) * 32768.0)
		}
		return out
	}
	for i, v := range audio {
		out[i] = int16(v * 32768.0)
	}
	return out
}
