package zho_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/zho"
)

func TestG2PConvertBasic(t *testing.T) {
	g, err := zho.New("")
	require.NoError(t, err)
	defer g.Close()

	result, err := g.Convert("你好吗，世界？")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Phonemes)
	assert.Equal(t, len(result.Phonemes), sum(result.Word2Ph))
}

func TestOpencpopToSymbolWithInitial(t *testing.T) {
	initial, final := zho.OpencpopToSymbol("hao", 3)
	assert.Equal(t, "h", initial)
	assert.Equal(t, "ao3", final)
}

func TestOpencpopToSymbolYiZeroInitial(t *testing.T) {
	initial, final := zho.OpencpopToSymbol("yi", 2)
	assert.Equal(t, "", initial)
	assert.Equal(t, "i2", final)
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
