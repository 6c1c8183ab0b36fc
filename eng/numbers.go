// Package eng implements English grapheme-to-phoneme conversion: number
// normalization, delimiter-preserving tokenization, dictionary lookup
// with a letter-by-letter spelling fallback, and ARPABET symbol filtering,
// grounded on text/english.rs.
package eng

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/divan/num2words"
)

var (
	reComma    = regexp.MustCompile(`(\d),(\d{3})`)
	rePound    = regexp.MustCompile(`£([0-9\.]*[0-9]+)`)
	reDollar   = regexp.MustCompile(`\$([0-9\.]*[0-9]+)`)
	reOrdinal  = regexp.MustCompile(`\b(\d+)(st|nd|rd|th)\b`)
	reDecimal  = regexp.MustCompile(`\b(\d+)\.(\d+)\b`)
	reBareNum  = regexp.MustCompile(`\b\d+\b`)
)

var ordinalWords = map[int]string{
	1: "first", 2: "second", 3: "third", 4: "fourth", 5: "fifth",
	6: "sixth", 7: "seventh", 8: "eighth", 9: "ninth", 10: "tenth",
	11: "eleventh", 12: "twelfth", 13: "thirteenth", 20: "twentieth",
	30: "thirtieth",
}

// NormalizeNumbers runs the fixed number-normalization chain over s,
// matching english.rs's order: strip thousands commas, expand currency
// symbols, spell out ordinals, read decimals digit-by-digit after the
// point, then spell out remaining bare integers — with special-cased
// four-digit year reading (1000-2999 read as two two-digit groups,
// e.g. "1984" -> "nineteen eighty-four") ahead of the general cardinal
// path.
func NormalizeNumbers(s string) string {
	s = reComma.ReplaceAllString(s, "$1$2")
	s = rePound.ReplaceAllStringFunc(s, func(m string) string {
		g := rePound.FindStringSubmatch(m)
		return spellCurrency(g[1]) + " pounds"
	})
	s = reDollar.ReplaceAllStringFunc(s, func(m string) string {
		g := reDollar.FindStringSubmatch(m)
		return spellCurrency(g[1]) + " dollars"
	})
	s = reOrdinal.ReplaceAllStringFunc(s, func(m string) string {
		g := reOrdinal.FindStringSubmatch(m)
		n, _ := strconv.Atoi(g[1])
		return spellOrdinal(n)
	})
	s = reDecimal.ReplaceAllStringFunc(s, func(m string) string {
		g := reDecimal.FindStringSubmatch(m)
		intPart, _ := strconv.Atoi(g[1])
		return spellCardinal(intPart) + " point " + spellDigits(g[2])
	})
	s = reBareNum.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(m)
		if err != nil {
			return m
		}
		return spellYearOrCardinal(n)
	})
	return s
}

func spellCardinal(n int) string {
	return num2words.Convert(n)
}

// spellYearOrCardinal special-cases 1000-2999, the range most often
// read as a calendar year ("1984" -> "nineteen eighty-four") rather than
// a plain magnitude ("one thousand nine hundred eighty-four").
func spellYearOrCardinal(n int) string {
	if n >= 1000 && n <= 2999 && n%100 != 0 {
		high := n / 100
		low := n % 100
		if low < 10 {
			return spellCardinal(high) + " oh " + spellCardinal(low)
		}
		return spellCardinal(high) + " " + spellCardinal(low)
	}
	return spellCardinal(n)
}

func spellOrdinal(n int) string {
	if w, ok := ordinalWords[n]; ok {
		return w
	}
	card := spellCardinal(n)
	// A compound like "twenty-one" only inflects its last segment:
	// "twenty-first", not "twenty-oneth".
	if idx := strings.LastIndex(card, "-"); idx >= 0 {
		return card[:idx+1] + ordinalSuffix(card[idx+1:])
	}
	return ordinalSuffix(card)
}

// ordinalSuffix inflects a single cardinal number word into its ordinal
// form: irregular units/teens via a lookup, "y" -> "ieth" for tens words,
// "th" appended otherwise.
func ordinalSuffix(word string) string {
	if w, ok := unitOrdinals[word]; ok {
		return w
	}
	if strings.HasSuffix(word, "y") {
		return strings.TrimSuffix(word, "y") + "ieth"
	}
	return word + "th"
}

var unitOrdinals = map[string]string{
	"one": "first", "two": "second", "three": "third", "four": "fourth",
	"five": "fifth", "six": "sixth", "seven": "seventh", "eight": "eighth",
	"nine": "ninth", "twelve": "twelfth",
}

func spellDigits(digits string) string {
	words := make([]string, len(digits))
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		words[i] = spellCardinal(d)
	}
	return strings.Join(words, " ")
}

func spellCurrency(amount string) string {
	parts := strings.SplitN(amount, ".", 2)
	whole, _ := strconv.Atoi(parts[0])
	out := spellCardinal(whole)
	if len(parts) == 2 && parts[1] != "" {
		cents, _ := strconv.Atoi(parts[1])
		out += " point " + spellCardinal(cents)
	}
	return out
}
