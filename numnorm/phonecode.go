package numnorm

import "regexp"

// Phonecode rewrites the three phone-number classes spec.md §4.1 step 7
// names — mobile, area-code landline, and 400-prefix national — grounded
// on phonecode.rs. Phone numbers are read digit-by-digit with "幺"
// substituted for "1", each "-"/" " separator read as "，", and must be
// claimed before ReplaceDefaultNum's generic long-digit-run fallback so a
// separated number doesn't lose its grouping.
type Phonecode struct {
	num *Num
}

// NewPhonecode constructs a Phonecode rewriter backed by n.
func NewPhonecode(n *Num) *Phonecode { return &Phonecode{num: n} }

var (
	// reMobile matches an 11-digit Chinese mobile number, optionally
	// preceded by "+86 "/"86-".
	reMobile = regexp.MustCompile(`(\+?86[- ]?)?1[3-9]\d{9}`)
	// reTelephone matches a landline with area code, e.g. "010-12345678"
	// or "0571-1234567" (area code 3-4 digits, local number 7-8 digits) —
	// RE_TELEPHONE in phonecode.rs.
	reTelephone = regexp.MustCompile(`0\d{2,3}[- ]\d{7,8}`)
	// reNationalUniform matches a 400-prefix national customer-service
	// number, e.g. "400-123-4567" or "4001234567" — RE_NATIONAL_UNIFORM_NUMBER
	// in phonecode.rs:17.
	reNationalUniform = regexp.MustCompile(`(400)(-)?\d{3}(-)?\d{4}`)
)

// ReplaceMobile rewrites an 11-digit mobile number digit-by-digit.
func (p *Phonecode) ReplaceMobile(s string) string {
	return reMobile.ReplaceAllStringFunc(s, func(m string) string {
		digits := separateSegments(m)
		return p.num.VerbalizeDigit(digits, true)
	})
}

// ReplaceTelephone rewrites an area-code landline number digit-by-digit,
// reading the original "-"/" " separator as "，".
func (p *Phonecode) ReplaceTelephone(s string) string {
	return reTelephone.ReplaceAllStringFunc(s, func(m string) string {
		digits := separateSegments(m)
		return p.num.VerbalizeDigit(digits, true)
	})
}

// ReplaceNationalUniform rewrites a 400-prefix national customer-service
// number digit-by-digit, reading each original "-" separator as "，".
func (p *Phonecode) ReplaceNationalUniform(s string) string {
	return reNationalUniform.ReplaceAllStringFunc(s, func(m string) string {
		digits := separateSegments(m)
		return p.num.VerbalizeDigit(digits, true)
	})
}

// separateSegments drops "+" and turns each "-"/" " separator into "，"
// (VerbalizeDigit copies non-digit bytes through unchanged).
func separateSegments(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '+' {
			continue
		}
		if c == '-' || c == ' ' {
			out = append(out, "，"...)
			continue
		}
		out = append(out, c)
	}
	return string(out)
}
