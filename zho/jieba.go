package zho

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/yanyiwu/gojieba"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/errs"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/logging"
)

// dictBaseURL mirrors translitkit's GoJiebaProvider: the cppjieba
// dictionary assets live in gojieba's own deps, fetched straight from
// its GitHub tag rather than vendored into this module.
const dictBaseURL = "https://raw.githubusercontent.com/yanyiwu/gojieba/v1.4.6/deps/cppjieba/dict/"

// dictFiles lists the cppjieba dictionary assets gojieba needs on disk,
// resolved the same way translitkit's GoJiebaProvider resolves them
// (lang/zho/gojieba.go::ensureDictDir): an XDG data directory, populated
// on first run by DownloadDictFiles and reused on every later run.
var dictFiles = []string{
	"jieba.dict.utf8", "hmm_model.utf8", "user.dict.utf8",
	"idf.utf8", "stop_words.utf8",
}

// DownloadDictFiles fetches any of dictFiles missing from dictDir from
// dictBaseURL, matching translitkit's GoJiebaProvider.ensureDictionaries
// (minus its progress-callback plumbing, which this single-shot CLI
// pipeline has no subscriber for).
func DownloadDictFiles(ctx context.Context, dictDir string) error {
	if err := os.MkdirAll(dictDir, 0755); err != nil {
		return fmt.Errorf("%w: gojieba dict dir %s: %v", errs.ErrResourceLoad, dictDir, err)
	}
	for _, f := range dictFiles {
		dest := filepath.Join(dictDir, f)
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		if err := downloadFile(ctx, dictBaseURL+f, dest); err != nil {
			return fmt.Errorf("%w: download %s: %v", errs.ErrResourceLoad, f, err)
		}
		logging.GetLogger().Info().Str("file", f).Msg("downloaded gojieba dictionary asset")
	}
	return nil
}

func downloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, dest)
}

// Segmenter wraps gojieba for word segmentation with part-of-speech
// tagging, the lexical front door to ChineseG2P.
type Segmenter struct {
	jieba *gojieba.Jieba
}

// NewSegmenter opens a gojieba instance against dictDir. An empty dictDir
// resolves to the XDG data directory "zerotts/gojieba/dict".
func NewSegmenter(dictDir string) (*Segmenter, error) {
	if dictDir == "" {
		var err error
		dictDir, err = ensureDictDir()
		if err != nil {
			return nil, fmt.Errorf("%w: gojieba dict dir: %v", errs.ErrResourceLoad, err)
		}
	}
	missing := false
	for _, f := range dictFiles {
		if _, err := os.Stat(filepath.Join(dictDir, f)); err != nil {
			missing = true
			break
		}
	}
	if missing {
		if err := DownloadDictFiles(context.Background(), dictDir); err != nil {
			return nil, err
		}
	}
	j := gojieba.NewJieba(
		filepath.Join(dictDir, "jieba.dict.utf8"),
		filepath.Join(dictDir, "hmm_model.utf8"),
		filepath.Join(dictDir, "user.dict.utf8"),
		filepath.Join(dictDir, "idf.utf8"),
		filepath.Join(dictDir, "stop_words.utf8"),
	)
	return &Segmenter{jieba: j}, nil
}

func ensureDictDir() (string, error) {
	dictDir := filepath.Join(xdg.DataHome, "zerotts", "gojieba", "dict")
	return dictDir, os.MkdirAll(dictDir, 0755)
}

// SegWord is one segmented token with its jieba part-of-speech tag.
type SegWord struct {
	Text string
	POS  string
}

// Cut runs precise-mode (HMM-assisted) segmentation with POS tagging.
func (s *Segmenter) Cut(text string) ([]SegWord, error) {
	if s.jieba == nil {
		return nil, fmt.Errorf("%w: segmenter not initialized", errs.ErrResourceLoad)
	}
	words := s.jieba.Cut(text, true)
	tags := s.jieba.Tag(text)
	if len(words) != len(tags) {
		return nil, fmt.Errorf("%w: gojieba word/tag count mismatch (%d vs %d)", errs.ErrTokenizer, len(words), len(tags))
	}
	out := make([]SegWord, len(words))
	for i, w := range words {
		pos := tags[i]
		// jieba.Tag returns "word/POS"; strip the word back off.
		if idx := lastSlash(pos); idx >= 0 {
			pos = pos[idx+1:]
		}
		out[i] = SegWord{Text: w, POS: pos}
	}
	return out, nil
}

// Close releases the underlying gojieba instance.
func (s *Segmenter) Close() error {
	if s.jieba != nil {
		s.jieba.Free()
		s.jieba = nil
	}
	return nil
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}
