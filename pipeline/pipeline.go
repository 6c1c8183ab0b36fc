// Package pipeline wires the text frontend, BERT conditioning, the
// autoregressive acoustic decode loop, and audio I/O into the single
// zero-shot reference-voice synthesis operation spec.md §2 describes:
// text, refText → LanguageSegmenter → {ChineseG2P | EnglishG2P} per
// span → phonemeIds + word2ph → BertConditioner → conditioning matrix,
// in parallel with refAudio → AudioIO → SSL/VQ prompt, all feeding
// AcousticLoop → PCM samples.
package pipeline

import (
	"context"
	"fmt"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/acoustic"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/acoustic/runtime"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/audio"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/bert"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/config"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/eng"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/errs"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/logging"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/segment"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/symbols"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/zho"
)

// Pipeline owns every stateful component a synthesis call needs: the
// text frontend, the BERT conditioner, and the acoustic decode loop
// over one shared TensorRuntime.
type Pipeline struct {
	cfg config.Config

	seg     *segment.Segmenter
	chunker *segment.Chunker
	zhoG2P  *zho.G2P
	engG2P  *eng.G2P
	cond    *bert.Conditioner
	loop    *acoustic.Loop
	rt      runtime.TensorRuntime
}

// New constructs every component from cfg: it opens one ONNXRuntime
// over the six graphs named in cfg.Assets, a gojieba segmenter, the
// English dictionary, and the BERT tokenizer.
func New(cfg config.Config) (*Pipeline, error) {
	rt, err := runtime.NewONNXRuntime(cfg.Assets.ONNXSharedLib, runtime.GraphPaths{
		Bert:          cfg.AssetPath(cfg.Assets.BertGraph),
		SSL:           cfg.AssetPath(cfg.Assets.SSLGraph),
		VQPrompt:      cfg.AssetPath(cfg.Assets.VQPromptGraph),
		T2SFirstStage: cfg.AssetPath(cfg.Assets.T2SFirstStageGraph),
		T2SStage:      cfg.AssetPath(cfg.Assets.T2SStageGraph),
		Vocoder:       cfg.AssetPath(cfg.Assets.VocoderGraph),
	})
	if err != nil {
		return nil, err
	}

	zg2p, err := zho.New(cfg.DataDir)
	if err != nil {
		rt.Close()
		return nil, err
	}

	dict, err := eng.LoadDict(cfg.AssetPath(cfg.Assets.EngDict))
	if err != nil {
		rt.Close()
		zg2p.Close()
		return nil, err
	}

	cond, err := bert.New(cfg.AssetPath(cfg.Assets.TokenizerJSON), rt)
	if err != nil {
		rt.Close()
		zg2p.Close()
		return nil, err
	}

	loop := acoustic.New(rt, acoustic.Config{
		TopK:        cfg.TopK,
		Temperature: cfg.Temperature,
		MaxSteps:    cfg.MaxSteps,
		HopLength:   640,
		WinLength:   2048,
	})

	return &Pipeline{
		cfg:     cfg,
		seg:     segment.New(),
		chunker: segment.NewChunker(),
		zhoG2P:  zg2p,
		engG2P:  eng.New(dict),
		cond:    cond,
		loop:    loop,
		rt:      rt,
	}, nil
}

// Close releases every owned resource (ONNX sessions, the gojieba
// segmenter, the BERT tokenizer).
func (p *Pipeline) Close() error {
	var firstErr error
	if err := p.zhoG2P.Close(); err != nil {
		firstErr = err
	}
	if err := p.cond.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := p.rt.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// frontendResult holds one text's phoneme ids and conditioning matrix,
// combined across every LanguageSpan the segmenter found in it.
type frontendResult struct {
	phonemeIDs []int64
	bert       [][]float32
}

// frontend runs the LanguageSegmenter, then ChineseG2P or EnglishG2P
// per span, and assembles the matching BERT conditioning rows (zeroed
// for English spans, which carry no BERT signal).
func (p *Pipeline) frontend(ctx context.Context, text string, needsLeadIn bool) (frontendResult, error) {
	spans := p.seg.Segment(text)
	if needsLeadIn && len(spans) > 0 {
		// A chunk other than the first was re-segmented mid-sentence by
		// the Chunker; prepend a lead-in connector so the BERT tokenizer
		// doesn't read it as a fresh document start (text_utils.rs's
		// chunk-boundary handling).
		dummy := segment.Span{Lang: spans[0].Lang}
		spans[0] = p.seg.Refine([]segment.Span{dummy, spans[0]})[1]
	}

	var result frontendResult
	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return frontendResult{}, err
		}
		switch span.Lang {
		case segment.CN:
			g2pResult, err := p.zhoG2P.Convert(span.Text)
			if err != nil {
				return frontendResult{}, err
			}
			var ids []int64
			for _, id := range symbols.ToSequence(g2pResult.Phonemes) {
				ids = append(ids, int64(id))
			}
			feats, err := p.cond.Features(ctx, span.Text, g2pResult.Word2Ph)
			if err != nil {
				logging.GetLogger().Warn().Err(err).Str("span", span.Text).Msg("bert conditioning failed, using zero features")
				feats = bert.ZeroFill(len(ids))
			}
			result.phonemeIDs = append(result.phonemeIDs, ids...)
			result.bert = bert.Concat(result.bert, feats)
		case segment.EN:
			g2pResult := p.engG2P.Convert(span.Text)
			var ids []int64
			for _, id := range symbols.ToSequence(g2pResult.Phonemes) {
				ids = append(ids, int64(id))
			}
			result.phonemeIDs = append(result.phonemeIDs, ids...)
			result.bert = bert.Concat(result.bert, bert.ZeroFill(len(ids)))
		default:
			return frontendResult{}, fmt.Errorf("%w: unknown language span %q", errs.ErrTokenizer, span.Lang)
		}
	}
	return result, nil
}

// Synthesize renders text in the voice of refAudioPath (a WAV
// recording of refText being spoken), returning 32 kHz mono PCM16
// samples. Long input is split into sentence-sized chunks by the
// Chunker and each chunk's audio is rendered independently, then
// concatenated — matching the reference pipeline's per-sentence batch
// inference.
func (p *Pipeline) Synthesize(ctx context.Context, text, refText, refAudioPath string) ([]int16, error) {
	prompt, err := p.frontend(ctx, refText, false)
	if err != nil {
		return nil, fmt.Errorf("reference text frontend: %w", err)
	}

	refWav16k, err := decodeToFloat32(refAudioPath, p.cfg.SampleRateSSL)
	if err != nil {
		return nil, err
	}
	refWav32k, err := decodeToFloat32(refAudioPath, p.cfg.SampleRateVocoder)
	if err != nil {
		return nil, err
	}

	var out []int16
	for i, chunk := range p.chunker.Cut(text) {
		target, err := p.frontend(ctx, chunk, i > 0)
		if err != nil {
			return nil, fmt.Errorf("text frontend for chunk %q: %w", chunk, err)
		}

		pcm, err := p.loop.Synthesize(ctx, acoustic.Input{
			RefWav16k:         refWav16k,
			RefWav32k:         refWav32k,
			PromptBertFeature: prompt.bert,
			TextBertFeature:   target.bert,
			PromptPhonemeIDs:  prompt.phonemeIDs,
			TextPhonemeIDs:    target.phonemeIDs,
		})
		if err != nil {
			return nil, fmt.Errorf("synthesize chunk %q: %w", chunk, err)
		}
		out = append(out, pcm...)
	}
	return out, nil
}

func decodeToFloat32(path string, sampleRate int) ([]float32, error) {
	pcm, err := audio.DecodePathToMonoPCM16(path, sampleRate)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(pcm))
	for i, s := range pcm {
		out[i] = float32(s) / 32768.0
	}
	return out, nil
}
