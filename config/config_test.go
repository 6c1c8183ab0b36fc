package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/config"
)

func TestDefaultFillsSampleRates(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 16000, cfg.SampleRateSSL)
	assert.Equal(t, 32000, cfg.SampleRateVocoder)
	assert.Equal(t, int64(20), cfg.TopK)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_k: 5\nlanguages: [\"zh\", \"en\"]\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.TopK)
	assert.Equal(t, 1500, cfg.MaxSteps) // untouched default
	assert.Equal(t, []string{"zho", "eng"}, cfg.Languages)
}

func TestLoadRejectsUnknownLanguage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("languages: [\"not-a-lang\"]\n"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestAssetPathKeepsAbsolute(t *testing.T) {
	cfg := config.Config{DataDir: "/data"}
	assert.Equal(t, "/data/foo.onnx", cfg.AssetPath("foo.onnx"))
	assert.Equal(t, "/abs/foo.onnx", cfg.AssetPath("/abs/foo.onnx"))
}
