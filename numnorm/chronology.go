package numnorm

import "regexp"

// Chronology rewrites date and time literals, grounded on chronology.rs.
type Chronology struct {
	num *Num
}

// NewChronology constructs a Chronology rewriter backed by n.
func NewChronology(n *Num) *Chronology { return &Chronology{num: n} }

var (
	reDate  = regexp.MustCompile(`(\d{4}|\d{2})年((0?[1-9]|1[0-2])月)?(((0?[1-9])|((1|2)[0-9])|30|31)([日号]))?`)
	reDate2 = regexp.MustCompile(`(\d{4})[-/.](0?[1-9]|1[0-2])[-/.]((0?[1-9])|((1|2)[0-9])|30|31)`)
	reTime  = regexp.MustCompile(`([0-1]?[0-9]|2[0-3]):([0-5][0-9])(:([0-5][0-9]))?`)
	reTimeRange = regexp.MustCompile(reTime.String() + `至` + reTime.String())
)

// ReplaceDate rewrites "YYYY年[M月][D日]" into its spoken form. The year
// reads digit-by-digit (not as a cardinal magnitude); month/day read as
// ordinary cardinals.
func (c *Chronology) ReplaceDate(s string) string {
	return reDate.ReplaceAllStringFunc(s, func(m string) string {
		g := reDate.FindStringSubmatch(m)
		year, monthToken, dayWithUnit := g[1], g[2], g[4]
		out := c.num.VerbalizeDigit(year, false) + "年"
		if monthToken != "" {
			month := monthToken[:len(monthToken)-len("月")]
			out += c.num.VerbalizeCardinal(month) + "月"
		}
		if dayWithUnit != "" {
			unit := dayWithUnit[len(dayWithUnit)-len("日"):]
			day := dayWithUnit[:len(dayWithUnit)-len(unit)]
			out += c.num.VerbalizeCardinal(day) + unit
		}
		return out
	})
}

// ReplaceDate2 rewrites the dash/slash/dot date variant "YYYY-M-D" (or
// "YYYY/M/D", "YYYY.M.D") the same way ReplaceDate handles "YYYY年M月D日"
// — RE_DATE2 in chronology.rs.
func (c *Chronology) ReplaceDate2(s string) string {
	return reDate2.ReplaceAllStringFunc(s, func(m string) string {
		g := reDate2.FindStringSubmatch(m)
		year, month, day := g[1], g[2], g[3]
		return c.num.VerbalizeDigit(year, false) + "年" + c.num.VerbalizeCardinal(month) + "月" + c.num.VerbalizeCardinal(day) + "日"
	})
}

// ReplaceTimeRange rewrites "H:MM至H:MM" as "H点MM分至H点MM分" — RE_TIME_RANGE
// in chronology.rs — and must run before ReplaceTime so the lone "至"
// separator doesn't get split across two independent single-time matches.
func (c *Chronology) ReplaceTimeRange(s string) string {
	return reTimeRange.ReplaceAllStringFunc(s, func(m string) string {
		g := reTimeRange.FindStringSubmatch(m)
		return c.formatTime(g[1], g[2], g[4]) + "至" + c.formatTime(g[5], g[6], g[8])
	})
}

// ReplaceTime rewrites "H:MM[:SS]" as "H点MM分[SS秒]", with the
// colloquial ":30" -> "半" substitution ("3:30" -> "三点半").
func (c *Chronology) ReplaceTime(s string) string {
	return reTime.ReplaceAllStringFunc(s, func(m string) string {
		g := reTime.FindStringSubmatch(m)
		return c.formatTime(g[1], g[2], g[4])
	})
}

// formatTime renders one hour/minute/second triple in spoken form, used
// by both ReplaceTime and ReplaceTimeRange so the two stay in sync.
func (c *Chronology) formatTime(hour, minute, second string) string {
	out := c.num.VerbalizeCardinal(hour) + "点"
	if minute == "30" {
		out += "半"
	} else {
		out += c.num.VerbalizeCardinal(minute) + "分"
	}
	if second != "" {
		out += c.num.VerbalizeCardinal(second) + "秒"
	}
	return out
}
