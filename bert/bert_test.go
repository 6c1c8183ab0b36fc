package bert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/bert"
)

func TestZeroFillShape(t *testing.T) {
	rows := bert.ZeroFill(5)
	assert.Len(t, rows, 5)
	for _, row := range rows {
		assert.Len(t, row, bert.HiddenSize)
		for _, v := range row {
			assert.Equal(t, float32(0), v)
		}
	}
}

func TestConcatPreservesOrder(t *testing.T) {
	a := [][]float32{{1}, {2}}
	b := [][]float32{{3}}
	got := bert.Concat(a, b)
	assert.Equal(t, [][]float32{{1}, {2}, {3}}, got)
}
