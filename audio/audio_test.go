package audio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/audio"
)

func TestEncodeThenDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.wav")

	samples := make([]int16, 1600)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}

	require.NoError(t, audio.EncodeMonoPCM16ToPath(samples, path, 16000, 256))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(44)) // at least a WAV header

	decoded, err := audio.DecodePathToMonoPCM16(path, 16000)
	require.NoError(t, err)
	assert.Len(t, decoded, len(samples))
}

func TestDecodeResamplesToRequestedRate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src.wav")

	samples := make([]int16, 3200)
	require.NoError(t, audio.EncodeMonoPCM16ToPath(samples, path, 32000, 0))

	decoded, err := audio.DecodePathToMonoPCM16(path, 16000)
	require.NoError(t, err)
	assert.InDelta(t, len(samples)/2, len(decoded), 2)
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := audio.DecodePathToMonoPCM16("/nonexistent/path.wav", 16000)
	assert.Error(t, err)
}
