package numnorm

import "regexp"

// reBareNumber matches any integer or decimal literal that the earlier
// rewrites left in place.
var reBareNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Normalizer runs the full numeric-literal rewrite chain in a fixed
// order: fractions and numeric ranges first, then phone numbers and
// dates/times (which must run before the generic long-digit-run fallback
// would otherwise swallow them), then temperatures, percentages,
// quantified numbers and measure-word expansion, then bare negatives and
// the default 7-or-more-digit run; any number still left is finally read
// as a cardinal (decimals via "点").
type Normalizer struct {
	num        *Num
	chronology *Chronology
	phonecode  *Phonecode
	quantifier *Quantifier
}

// NewNormalizer constructs a Normalizer with all sub-rewriters wired.
func NewNormalizer() *Normalizer {
	n := NewNum()
	return &Normalizer{
		num:        n,
		chronology: NewChronology(n),
		phonecode:  NewPhonecode(n),
		quantifier: NewQuantifier(n),
	}
}

// Normalize runs the fixed rewrite chain over s and returns the text with
// every recognized numeric/temporal literal replaced by its Chinese
// reading. Input that matches nothing in the chain passes through
// unchanged.
func (nrm *Normalizer) Normalize(s string) string {
	s = nrm.num.ReplaceFrac(s)
	s = nrm.num.ReplaceRange(s)
	s = nrm.phonecode.ReplaceMobile(s)
	s = nrm.phonecode.ReplaceTelephone(s)
	s = nrm.phonecode.ReplaceNationalUniform(s)
	s = nrm.chronology.ReplaceDate(s)
	s = nrm.chronology.ReplaceDate2(s)
	s = nrm.chronology.ReplaceTimeRange(s)
	s = nrm.chronology.ReplaceTime(s)
	s = nrm.quantifier.ReplaceTemperature(s)
	s = nrm.num.ReplacePercentage(s)
	s = nrm.num.ReplacePositiveQuantifier(s)
	s = nrm.quantifier.ReplaceMeasure(s)
	s = nrm.num.ReplaceNegativeNum(s)
	s = nrm.num.ReplaceDefaultNum(s)
	s = reBareNumber.ReplaceAllStringFunc(s, nrm.num.Num2Str)
	return s
}

// VerbalizeCardinal exposes the cardinal-number reading primitive so
// other packages (e.g. eng, for mixed-script digit runs) can reuse the
// same algorithm without re-deriving it.
func (nrm *Normalizer) VerbalizeCardinal(value string) string {
	return nrm.num.VerbalizeCardinal(value)
}
