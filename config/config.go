// Package config loads zerotts's runtime configuration: asset paths,
// AR decode loop parameters, and sample rates, the way the teacher's
// generator/main.go loads its per-language YAML configs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	iso "github.com/barbashov/iso639-3"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v2"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/errs"
)

// Config is the top-level YAML-loaded configuration.
type Config struct {
	DataDir             string   `yaml:"data_dir"`
	ExecutionProviders   []string `yaml:"execution_providers"`
	TopK                int64    `yaml:"top_k"`
	Temperature         float32  `yaml:"temperature"`
	MaxSteps            int      `yaml:"max_steps"`
	SampleRateSSL       int      `yaml:"sample_rate_ssl"`
	SampleRateVocoder   int      `yaml:"sample_rate_vocoder"`
	// Languages lists the configured locales; entries may be given in
	// any ISO 639 format and Load normalizes them to 639-3. No other
	// package reads this field: the segmenter always emits both CN and
	// EN spans.
	Languages []string `yaml:"languages"`

	Assets Assets `yaml:"assets"`
}

// Assets names the on-disk files the pipeline's graphs/dictionaries
// load from, each resolved relative to DataDir when given as a bare
// filename.
type Assets struct {
	BertGraph          string `yaml:"bert_graph"`
	SSLGraph           string `yaml:"ssl_graph"`
	VQPromptGraph      string `yaml:"vq_prompt_graph"`
	T2SFirstStageGraph string `yaml:"t2s_first_stage_graph"`
	T2SStageGraph      string `yaml:"t2s_stage_graph"`
	VocoderGraph       string `yaml:"vocoder_graph"`
	TokenizerJSON      string `yaml:"tokenizer_json"`
	EngDict            string `yaml:"eng_dict"`
	ONNXSharedLib      string `yaml:"onnx_shared_lib"`
}

// Default returns the configuration the pipeline falls back to when no
// YAML file is supplied: an XDG data directory, the reference
// pipeline's sampling defaults, and both of the languages the text
// frontend supports.
func Default() Config {
	dataDir := filepath.Join(xdg.DataHome, "zerotts")
	return Config{
		DataDir:           dataDir,
		TopK:              20,
		Temperature:       0.8,
		MaxSteps:          1500,
		SampleRateSSL:     16000,
		SampleRateVocoder: 32000,
		Languages:         []string{"zho", "eng"},
		Assets: Assets{
			BertGraph:          "bert.onnx",
			SSLGraph:           "ssl.onnx",
			VQPromptGraph:      "vq_prompt.onnx",
			T2SFirstStageGraph: "t2s_first_stage.onnx",
			T2SStageGraph:      "t2s_stage.onnx",
			VocoderGraph:       "vocoder.onnx",
			TokenizerJSON:      "tokenizer.json",
			EngDict:            "eng_dict.json",
		},
	}
}

// Load reads a YAML config file at path, overlaying it on Default() so
// a partial file only needs to set the fields it wants to change.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: config %s: %v", errs.ErrResourceLoad, path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse config %s: %v", errs.ErrResourceLoad, path, err)
	}
	if err := cfg.normalizeLanguages(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalizeLanguages rewrites every entry of Languages to its ISO
// 639-3 code, accepting any input format (639-1, 639-2/T, 639-2/B, or
// 639-3), matching translitkit's IsValidISO639.
func (c *Config) normalizeLanguages() error {
	for i, lang := range c.Languages {
		code := iso.FromAnyCode(lang)
		if code == nil {
			return fmt.Errorf("%w: unrecognized language code %q", errs.ErrResourceLoad, lang)
		}
		c.Languages[i] = code.Part3
	}
	return nil
}

// AssetPath resolves name against DataDir unless it is already
// absolute.
func (c Config) AssetPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
