// Package audio implements the AudioIO boundary (ffmpeg_utils.rs's
// decode/encode interface shape), wired to real WAV container I/O via
// github.com/go-audio/wav and github.com/go-audio/audio rather than an
// external ffmpeg process, with a linear-interpolation resampler in
// the style of the retrieval pack's voice pipelines.
package audio

import (
	"fmt"
	"math"
	"os"

	waudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/errs"
)

// DecodePathToMonoPCM16 reads the WAV file at path, down-mixes to mono
// and resamples to sampleRate, returning signed 16-bit PCM samples.
func DecodePathToMonoPCM16(path string, sampleRate int) ([]int16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errs.ErrResourceLoad, path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a valid WAV file", errs.ErrResourceLoad, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", errs.ErrResourceLoad, path, err)
	}

	mono := downmixToMono(buf)
	srcRate := int(dec.SampleRate)
	return resampleInt16(mono, srcRate, sampleRate), nil
}

// EncodeMonoPCM16ToPath writes samples (a mono PCM16 stream at
// sampleRate) as a PCM16LE WAV file at path. framesPerPacket chunks
// the write into packets of that many frames, matching the streaming
// encoder pattern the reference pipeline uses for long renders.
func EncodeMonoPCM16ToPath(samples []int16, path string, sampleRate, framesPerPacket int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", errs.ErrResourceLoad, path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	if framesPerPacket <= 0 {
		framesPerPacket = len(samples)
		if framesPerPacket == 0 {
			framesPerPacket = 1
		}
	}

	format := &waudio.Format{NumChannels: 1, SampleRate: sampleRate}
	for start := 0; start < len(samples); start += framesPerPacket {
		end := start + framesPerPacket
		if end > len(samples) {
			end = len(samples)
		}
		ints := make([]int, end-start)
		for i, s := range samples[start:end] {
			ints[i] = int(s)
		}
		buf := &waudio.IntBuffer{Format: format, Data: ints, SourceBitDepth: 16}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("write packet at frame %d: %w", start, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}
	return nil
}

// downmixToMono averages all channels of buf into a single float32
// slice in [-1, 1].
func downmixToMono(buf *waudio.IntBuffer) []float32 {
	ch := buf.Format.NumChannels
	if ch <= 0 {
		ch = 1
	}
	maxVal := float32(int(1) << (buf.SourceBitDepth - 1))
	if buf.SourceBitDepth == 0 {
		maxVal = 32768
	}
	n := len(buf.Data) / ch
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		var sum float32
		for c := 0; c < ch; c++ {
			sum += float32(buf.Data[i*ch+c]) / maxVal
		}
		out[i] = sum / float32(ch)
	}
	return out
}

// resampleInt16 resamples a [-1,1] float32 stream from srcRate to
// dstRate via linear interpolation and quantizes to int16.
func resampleInt16(samples []float32, srcRate, dstRate int) []int16 {
	if srcRate == dstRate || len(samples) == 0 {
		return quantize(samples)
	}
	ratio := float64(srcRate) / float64(dstRate)
	outLen := int(math.Ceil(float64(len(samples)) / ratio))
	out := make([]float32, outLen)
	for i := range out {
		srcIdx := float64(i) * ratio
		idx := int(srcIdx)
		frac := float32(srcIdx - float64(idx))
		switch {
		case idx+1 < len(samples):
			out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
		case idx < len(samples):
			out[i] = samples[idx]
		}
	}
	return quantize(out)
}

func quantize(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		out[i] = int16(s * 32767)
	}
	return out
}
