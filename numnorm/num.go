// Package numnorm verbalizes numeric and temporal literals embedded in
// Chinese text — fractions, percentages, ranges, phone numbers, dates,
// times, temperatures and quantified measures — ahead of grapheme-to-phoneme
// conversion. It is a direct port of the Rust zh_normalization module
// (num.rs, chronology.rs, phonecode.rs, quantifier.rs).
package numnorm

import (
	"regexp"
	"strconv"
	"strings"
)

// digits maps a single decimal digit character to its Chinese reading.
var digits = map[byte]string{
	'0': "零", '1': "一", '2': "二", '3': "三", '4': "四",
	'5': "五", '6': "六", '7': "七", '8': "八", '9': "九",
}

// units holds the positional unit characters, keyed by power of ten,
// checked in ascending order so the largest applicable unit wins.
var unitPowers = []int{1, 2, 3, 4, 8}
var units = map[int]string{1: "十", 2: "百", 3: "千", 4: "万", 8: "亿"}

// Num implements the cardinal/digit verbalization primitives shared by
// every other numnorm rewrite rule.
type Num struct{}

// NewNum constructs a Num verbalizer. It holds no state; it exists (rather
// than being a set of free functions) to mirror NumUtil in num.rs and give
// the other rewrite rules (Chronology, Phonecode, Quantifier) a consistent
// embedding pattern.
func NewNum() *Num { return &Num{} }

// VerbalizeDigit reads value character by character. When altOne is true,
// "1" reads as "幺" instead of "一" — used for phone numbers, where digit
// runs are read aloud one at a time and "一"/"七" are easily confused.
func (n *Num) VerbalizeDigit(value string, altOne bool) string {
	var sb strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		d, ok := digits[c]
		if !ok {
			sb.WriteByte(c)
			continue
		}
		if altOne && c == '1' {
			sb.WriteString("幺")
		} else {
			sb.WriteString(d)
		}
	}
	return sb.String()
}

// VerbalizeCardinal reads value as a Chinese cardinal number, recursively
// splitting on the largest applicable positional unit.
func (n *Num) VerbalizeCardinal(value string) string {
	if value == "" {
		return ""
	}
	parts := n.getValue(value, true)
	joined := strings.Join(parts, "")
	// "一十四" -> "十四" when 十 is the number's leading unit.
	if len(parts) >= 2 && parts[0] == "一" && parts[1] == "十" {
		joined = strings.Join(parts[1:], "")
	}
	// "零一十" -> "零十": a ten-group reached after a zero-filled gap never
	// keeps the leading "一" of "十" either.
	joined = strings.ReplaceAll(joined, "零一十", "零十")
	return joined
}

// getValue is the recursive digit-group splitter behind VerbalizeCardinal.
func (n *Num) getValue(value string, useZero bool) []string {
	stripped := strings.TrimLeft(value, "0")
	if stripped == "" {
		return nil
	}
	if len(stripped) == 1 {
		if useZero && len(stripped) < len(value) {
			return []string{digits['0'], digits[stripped[0]]}
		}
		return []string{digits[stripped[0]]}
	}

	largestUnit := 0
	for _, p := range unitPowers {
		if p < len(stripped) {
			largestUnit = p
		}
	}

	firstPart := value[:len(value)-largestUnit]
	secondPart := value[len(value)-largestUnit:]

	result := n.getValue(firstPart, true)
	result = append(result, units[largestUnit])
	result = append(result, n.getValue(secondPart, true)...)
	return result
}

// Num2Str verbalizes a possibly-decimal numeric literal: the integer part
// via VerbalizeCardinal, the fractional part digit-by-digit (trailing
// zeros trimmed), joined by "点". An integer part that verbalizes empty
// (e.g. ".5") gets a leading "零".
func (n *Num) Num2Str(value string) string {
	split := strings.SplitN(value, ".", 2)
	integer := split[0]
	result := n.VerbalizeCardinal(integer)
	if result == "" {
		result = "零"
	}
	if len(split) == 2 {
		decimal := strings.TrimRight(split[1], "0")
		if decimal != "" {
			result += "点" + n.VerbalizeDigit(decimal, false)
		}
	}
	return result
}

var (
	reFrac       = regexp.MustCompile(`(-?)(\d+)/(\d+)`)
	rePercentage = regexp.MustCompile(`(-?)(\d+(?:\.\d+)?)%`)
	reRange      = regexp.MustCompile(`(\d+(?:\.\d+)?)[-~](\d+(?:\.\d+)?)`)
	reInteger    = regexp.MustCompile(`(-)(\d+)`)
	reDefaultNum = regexp.MustCompile(`\d{7}\d*`)
)

// comQuantifiers is the closed set of unit/time/currency words that a bare
// number may be "quantified" by (§4.1 step 5). ReplacePositiveQuantifier
// tries the entries in list order; each match needs the digits directly
// before the word.
var comQuantifiers = []string{
	"多", "余", "几",
	"吨", "千克", "克", "斤", "磅",
	"公里", "千米", "米", "厘米", "毫米",
	"升", "毫升",
	"元", "角", "分", "美元", "块", "欧元", "日元", "韩元",
	"天", "年", "月", "周", "小时", "分钟", "秒",
	"个", "位", "名", "只", "条", "张", "块", "本", "辆", "台", "间", "次", "场",
}

// ReplaceFrac rewrites "a/b" as "b分之a", with a "负" sign prefix for
// negative fractions.
func (n *Num) ReplaceFrac(s string) string {
	return reFrac.ReplaceAllStringFunc(s, func(m string) string {
		g := reFrac.FindStringSubmatch(m)
		sign := ""
		if g[1] == "-" {
			sign = "负"
		}
		return sign + n.VerbalizeCardinal(g[3]) + "分之" + n.VerbalizeCardinal(g[2])
	})
}

// ReplacePercentage rewrites "n%" as "百分之n".
func (n *Num) ReplacePercentage(s string) string {
	return rePercentage.ReplaceAllStringFunc(s, func(m string) string {
		g := rePercentage.FindStringSubmatch(m)
		sign := ""
		if g[1] == "-" {
			sign = "负"
		}
		return sign + "百分之" + n.Num2Str(g[2])
	})
}

// ReplaceRange rewrites a purely numeric "a-b"/"a~b" range as "a到b".
func (n *Num) ReplaceRange(s string) string {
	return reRange.ReplaceAllStringFunc(s, func(m string) string {
		g := reRange.FindStringSubmatch(m)
		return n.Num2Str(g[1]) + "到" + n.Num2Str(g[2])
	})
}

// ReplaceNegativeNum rewrites a bare negative integer "-n" as "负n".
func (n *Num) ReplaceNegativeNum(s string) string {
	return reInteger.ReplaceAllStringFunc(s, func(m string) string {
		g := reInteger.FindStringSubmatch(m)
		return "负" + n.Num2Str(g[2])
	})
}

// ReplacePositiveQuantifier rewrites "n<quantifier>" where quantifier is
// drawn from the closed comQuantifiers set. A trailing "+" or "多" on the
// numeral is rewritten to the word "多".
func (n *Num) ReplacePositiveQuantifier(s string) string {
	for _, q := range comQuantifiers {
		re := regexp.MustCompile(`(\d+(?:\.\d+)?)(\+|多)?` + regexp.QuoteMeta(q))
		s = re.ReplaceAllStringFunc(s, func(m string) string {
			g := re.FindStringSubmatch(m)
			extra := ""
			if g[2] != "" {
				extra = "多"
			}
			return n.Num2Str(g[1]) + extra + q
		})
	}
	return s
}

// ReplaceDefaultNum rewrites a bare run of 7-or-more digits digit-by-digit,
// substituting "幺" for "1" — the fallback path for numeric literals that
// no other rule (phone, date, time, quantifier) claimed.
func (n *Num) ReplaceDefaultNum(s string) string {
	return reDefaultNum.ReplaceAllStringFunc(s, func(m string) string {
		return n.VerbalizeDigit(m, true)
	})
}

// parseFloat is a small helper for callers that need the numeric value
// rather than its textual form; nothing in this package calls it.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
