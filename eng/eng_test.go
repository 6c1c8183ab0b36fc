package eng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/eng"
)

func TestNormalizeNumbersYear(t *testing.T) {
	assert.Equal(t, "nineteen eighty-four", eng.NormalizeNumbers("1984"))
}

func TestNormalizeNumbersOrdinal(t *testing.T) {
	assert.Equal(t, "the twenty-first", eng.NormalizeNumbers("the 21st"))
}

func TestTokenizeCamelCase(t *testing.T) {
	assert.Equal(t, []string{"hello", "World"}, eng.Tokenize("helloWorld"))
}

func TestConvertFallsBackToSpelling(t *testing.T) {
	g := eng.New(nil)
	result := g.Convert("hi")
	assert.NotEmpty(t, result.Phonemes)
	assert.Equal(t, len(result.Phonemes), sum(result.Word2Ph))
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
