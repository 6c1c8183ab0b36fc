package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/audio"
)

func TestDecodeToFloat32NormalizesRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.wav")
	samples := []int16{0, 16384, -16384, 32767, -32768}
	require.NoError(t, audio.EncodeMonoPCM16ToPath(samples, path, 16000, 0))

	floats, err := decodeToFloat32(path, 16000)
	require.NoError(t, err)
	require.Len(t, floats, len(samples))
	for _, f := range floats {
		assert.LessOrEqual(t, f, float32(1.0))
		assert.GreaterOrEqual(t, f, float32(-1.0))
	}
}
