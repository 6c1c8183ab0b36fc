package numnorm

import (
	"regexp"
	"strings"
)

// Quantifier rewrites measure-unit abbreviations and temperature literals,
// grounded on quantifier.rs.
type Quantifier struct {
	num *Num
}

// NewQuantifier constructs a Quantifier rewriter backed by n.
func NewQuantifier(n *Num) *Quantifier { return &Quantifier{num: n} }

// measureMap is the closed substring table used to expand abbreviated
// measure units to their spoken Chinese form. Normalizer applies it after
// the quantifier pass, so "5cm" becomes "5厘米" here and the numeral itself
// is read by Normalizer's final bare-number pass. Order
// matches quantifier.rs's measure_dict_keys exactly ("顺序有先后" — order
// matters): the area/volume suffixes (cm2/cm²/m2/m²/m³/m3...) must be
// tried before their bare-unit prefixes (cm/m) are replaced out from
// under them.
var measureMap = []struct{ abbr, full string }{
	{"cm2", "平方厘米"}, {"cm²", "平方厘米"}, {"cm3", "立方厘米"}, {"cm³", "立方厘米"},
	{"cm", "厘米"}, {"db", "分贝"}, {"ds", "毫秒"}, {"kg", "千克"}, {"km", "千米"},
	{"m2", "平方米"}, {"m²", "平方米"}, {"m³", "立方米"}, {"m3", "立方米"},
	{"ml", "毫升"}, {"m", "米"}, {"mm", "毫米"}, {"s", "秒"},
}

// ReplaceMeasure expands closed-set unit abbreviations to their Chinese
// reading. It is case-sensitive and runs before numeral verbalization.
func (q *Quantifier) ReplaceMeasure(s string) string {
	for _, m := range measureMap {
		s = strings.ReplaceAll(s, m.abbr, m.full)
	}
	return s
}

// reTemperature matches a temperature literal in any of the four suffix
// forms spec.md §4.1 step 10 names: "°C", "℃", "度", "摄氏度" — RE_TEMPERATURE
// in quantifier.rs.
var reTemperature = regexp.MustCompile(`(-?)(\d+(?:\.\d+)?)(°C|℃|度|摄氏度)`)

// ReplaceTemperature rewrites a temperature literal. A leading "-" reads
// as the prefix word "零下" rather than "负", matching how Chinese
// speakers read sub-zero temperatures. The Celsius suffixes "°C", "℃"
// and "摄氏度" all read "摄氏度"; a bare "度" stays "度".
func (q *Quantifier) ReplaceTemperature(s string) string {
	return reTemperature.ReplaceAllStringFunc(s, func(m string) string {
		g := reTemperature.FindStringSubmatch(m)
		unit := "度"
		if g[3] != "度" {
			unit = "摄氏度"
		}
		return q.sign(g[1]) + q.num.Num2Str(g[2]) + unit
	})
}

func (q *Quantifier) sign(neg string) string {
	if neg == "-" {
		return "零下"
	}
	return ""
}
