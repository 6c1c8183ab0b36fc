package segment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tassa-yoniso-manasi-karoto/zerotts/segment"
)

func TestSegmentMixedLatinHan(t *testing.T) {
	sg := segment.New()
	spans := sg.Segment("hello，我们")
	assert := assert.New(t)
	if assert.Len(spans, 2) {
		assert.Equal(segment.EN, spans[0].Lang)
		assert.Equal("hello，", spans[0].Text)
		assert.Equal(segment.CN, spans[1].Lang)
		assert.Equal("我们", spans[1].Text)
	}
}

func TestChunkerMergesShortTrailingFragment(t *testing.T) {
	c := segment.NewChunker()
	c.MaxChars = 10
	chunks := c.Cut("这是一句很长很长的话。短。")
	assert.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.True(t, len([]rune(chunk)) >= c.MergeThreshold || len(chunks) == 1)
	}
}
