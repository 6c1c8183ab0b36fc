package numnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCardinalFallthrough(t *testing.T) {
	n := NewNormalizer()
	// Four digits don't hit the >=7-digit default-number path, so this
	// falls through to the cardinal verbalizer.
	assert.Equal(t, "二千零十四", n.Normalize("2014"))
}

func TestNormalizePhonecode(t *testing.T) {
	n := NewNormalizer()
	assert.Equal(t, "幺三八幺二三四五六七八", n.Normalize("13812345678"))
}

func TestNormalizeTemperature(t *testing.T) {
	n := NewNormalizer()
	assert.Equal(t, "零下二点五摄氏度", n.Normalize("-2.5℃"))
}

func TestNormalizeDefaultLongRun(t *testing.T) {
	n := NewNormalizer()
	// 7+ digit runs that aren't phone/date/time fall to the default
	// digit-by-digit reading with 幺 substitution.
	assert.Equal(t, "幺二三四五六七", n.Normalize("1234567"))
}

func TestNormalizeFrac(t *testing.T) {
	n := NewNormalizer()
	assert.Equal(t, "三分之一", n.Normalize("1/3"))
}

func TestNormalizePercentage(t *testing.T) {
	n := NewNormalizer()
	assert.Equal(t, "百分之五十", n.Normalize("50%"))
}

func TestVerbalizeCardinalCollapsesOnlyWhenLeading(t *testing.T) {
	n := NewNum()
	assert.Equal(t, "十四", n.VerbalizeCardinal("14"))
	assert.Equal(t, "二百一十四", n.VerbalizeCardinal("214"))
}
