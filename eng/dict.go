package eng

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/errs"
	"github.com/tassa-yoniso-manasi-karoto/zerotts/logging"
)

// Dict is a CMU-style pronunciation dictionary: uppercase word to one or
// more ARPABET pronunciations (the first is used; alternates are kept
// for parity with the source format but not otherwise consulted).
type Dict struct {
	entries map[string][][]string
}

// LoadDict reads eng_dict.json (word -> list of phone lists) from path.
func LoadDict(path string) (*Dict, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: eng dict %s: %v", errs.ErrResourceLoad, path, err)
	}
	var parsed map[string][][]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: eng dict %s: %v", errs.ErrResourceLoad, path, err)
	}
	return &Dict{entries: parsed}, nil
}

// Lookup returns the first pronunciation for word (case-insensitive) and
// whether it was found.
func (d *Dict) Lookup(word string) ([]string, bool) {
	if d == nil {
		return nil, false
	}
	phones, ok := d.entries[strings.ToUpper(word)]
	if !ok || len(phones) == 0 {
		return nil, false
	}
	return phones[0], true
}

// letterPhones is the deterministic letter-by-letter fallback used in
// place of a neural grapheme-to-phoneme model (no model weights ship
// with this module): each letter reads as its approximate ARPABET
// pronunciation, which keeps output intelligible for out-of-dictionary
// words rather than silently dropping them.
var letterPhones = map[rune][]string{
	'a': {"EY"}, 'b': {"B", "IY"}, 'c': {"S", "IY"}, 'd': {"D", "IY"},
	'e': {"IY"}, 'f': {"EH", "F"}, 'g': {"JH", "IY"}, 'h': {"EY", "CH"},
	'i': {"AY"}, 'j': {"JH", "EY"}, 'k': {"K", "EY"}, 'l': {"EH", "L"},
	'm': {"EH", "M"}, 'n': {"EH", "N"}, 'o': {"OW"}, 'p': {"P", "IY"},
	'q': {"K", "Y", "UW"}, 'r': {"AA", "R"}, 's': {"EH", "S"}, 't': {"T", "IY"},
	'u': {"Y", "UW"}, 'v': {"V", "IY"}, 'w': {"D", "AH", "B", "AH", "L", "Y", "UW"},
	'x': {"EH", "K", "S"}, 'y': {"W", "AY"}, 'z': {"Z", "IY"},
}

// SpellOut phonemizes word letter-by-letter via letterPhones, logging a
// LookupMiss warning: this is the fallback path a dictionary miss falls
// through to.
func SpellOut(word string) []string {
	var out []string
	for _, r := range strings.ToLower(word) {
		if phones, ok := letterPhones[r]; ok {
			out = append(out, phones...)
		}
	}
	logging.GetLogger().Warn().Str("word", word).Msg("eng g2p lookup miss, spelling out")
	return out
}
