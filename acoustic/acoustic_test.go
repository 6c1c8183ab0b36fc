package acoustic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/acoustic"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/acoustic/runtime"
)

// fakeRuntime is a deterministic stand-in for TensorRuntime: its stage
// decoder emits two ordinary tokens and then EOS on the third step, so
// the loop's trimming/zeroing logic can be exercised without a real
// ONNX graph.
type fakeRuntime struct {
	steps int
}

func (f *fakeRuntime) Bert(ctx context.Context, inputIDs, attentionMask, tokenTypeIDs runtime.Tensor) (runtime.Tensor, error) {
	return runtime.F32([]int64{1, 3, 4}, make([]float32, 12)), nil
}

func (f *fakeRuntime) SSL(ctx context.Context, refWav runtime.Tensor) (runtime.Tensor, error) {
	return runtime.F32([]int64{1, 768, 4}, make([]float32, 768*4)), nil
}

func (f *fakeRuntime) VQPrompt(ctx context.Context, sslEmbedding runtime.Tensor) (runtime.Tensor, error) {
	return runtime.I64([]int64{1, 1, 4}, []int64{1, 2, 3, 4}), nil
}

func (f *fakeRuntime) T2SFirstStage(ctx context.Context, allPhonemeIDs, bertFeature, promptSemantic, topK, temperature runtime.Tensor) (runtime.Tensor, []runtime.Tensor, error) {
	y := runtime.I64([]int64{1, 1}, []int64{7})
	state := []runtime.Tensor{
		runtime.F32([]int64{1}, []float32{0}),
		runtime.F32([]int64{1}, []float32{0}),
		runtime.F32([]int64{1}, []float32{0}),
	}
	return y, state, nil
}

func (f *fakeRuntime) T2SStage(ctx context.Context, y runtime.Tensor, state []runtime.Tensor, xyAttnMask, topK, temperature runtime.Tensor) (runtime.Tensor, runtime.Tensor, []runtime.Tensor, error) {
	f.steps++
	token := int64(f.steps)
	if f.steps >= 3 {
		token = 1024
	}
	logits := runtime.I64([]int64{1}, []int64{token})
	samples := runtime.I64([]int64{1, 1}, []int64{token})
	return logits, samples, state, nil
}

func (f *fakeRuntime) Vocoder(ctx context.Context, predSemantic runtime.Tensor, cond runtime.VocoderConditioning) (runtime.Tensor, error) {
	return runtime.F32([]int64{1, 1, 4}, []float32{0.1, -0.2, 0.3, -0.4}), nil
}

func (f *fakeRuntime) Close() error { return nil }

func TestSynthesizeRunsUntilEOS(t *testing.T) {
	rt := &fakeRuntime{}
	loop := acoustic.New(rt, acoustic.Config{MaxSteps: 10, TopK: 5, Temperature: 0.7, HopLength: 640, WinLength: 2048})

	in := acoustic.Input{
		RefWav16k:         make([]float32, 16000),
		RefWav32k:         make([]float32, 32000),
		PromptBertFeature: [][]float32{{0, 0}, {0, 0}},
		TextBertFeature:   [][]float32{{0, 0}},
		PromptPhonemeIDs:  []int64{1, 2},
		TextPhonemeIDs:    []int64{3},
	}

	pcm, err := loop.Synthesize(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 3, rt.steps)
	assert.Len(t, pcm, 4)
}

func TestSynthesizeRejectsEmptySeed(t *testing.T) {
	rt := &emptySeedRuntime{}
	loop := acoustic.New(rt, acoustic.Config{})
	_, err := loop.Synthesize(context.Background(), acoustic.Input{
		RefWav16k: make([]float32, 10), RefWav32k: make([]float32, 10),
	})
	assert.Error(t, err)
}

type emptySeedRuntime struct{ fakeRuntime }

func (f *emptySeedRuntime) T2SFirstStage(ctx context.Context, allPhonemeIDs, bertFeature, promptSemantic, topK, temperature runtime.Tensor) (runtime.Tensor, []runtime.Tensor, error) {
	return runtime.Tensor{}, nil, nil
}
