// Command synthesize renders a line of text in the voice of a
// reference recording, writing the result as a 32 kHz mono WAV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/audio"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/config"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/logging"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/pipeline"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file (defaults to built-in defaults)")
		text       = flag.String("text", "", "text to synthesize")
		refText    = flag.String("ref-text", "", "transcript of the reference recording")
		refAudio   = flag.String("ref-audio", "", "path to the reference speaker's WAV recording")
		outPath    = flag.String("out", "out.wav", "output WAV path")
	)
	flag.Parse()

	if *text == "" || *refAudio == "" {
		fmt.Fprintln(os.Stderr, "usage: synthesize -text \"...\" -ref-audio ref.wav -ref-text \"...\" -out out.wav")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logging.GetLogger().Error().Err(err).Msg("failed to load config")
			os.Exit(1)
		}
		cfg = loaded
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		logging.GetLogger().Error().Err(err).Msg("failed to initialize pipeline")
		os.Exit(1)
	}
	defer p.Close()

	pcm, err := p.Synthesize(context.Background(), *text, *refText, *refAudio)
	if err != nil {
		logging.GetLogger().Error().Err(err).Msg("synthesis failed")
		os.Exit(1)
	}

	if err := audio.EncodeMonoPCM16ToPath(pcm, *outPath, cfg.SampleRateVocoder, 4096); err != nil {
		logging.GetLogger().Error().Err(err).Msg("failed to write output WAV")
		os.Exit(1)
	}

	logging.GetLogger().Info().Str("out", *outPath).Int("samples", len(pcm)).Msg("synthesis complete")
}
