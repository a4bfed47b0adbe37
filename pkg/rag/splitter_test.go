package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("短文本", 100, 20)
	assert.Equal(t, []string{"短文本"}, chunks)
}

func TestSplitTextChunksOverlap(t *testing.T) {
	text := strings.Repeat("a", 250)
	chunks := SplitText(text, 100, 20)

	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 90)
	// consecutive chunks share the overlap region
	assert.Equal(t, chunks[0][80:], chunks[1][:20])
}

func TestSplitTextPrefersSentenceBoundary(t *testing.T) {
	text := strings.Repeat("b", 90) + "。" + strings.Repeat("c", 60)
	chunks := SplitText(text, 100, 10)

	assert.True(t, strings.HasSuffix(chunks[0], "。"))
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 10)

	// degenerate overlap must still terminate and cover the input
	assert.Equal(t, 5, len(chunks))
}

func TestSplitTextCoversAllRunes(t *testing.T) {
	text := strings.Repeat("商品信息测试", 40)
	chunks := SplitText(text, 50, 10)

	assert.True(t, strings.HasSuffix(text, chunks[len(chunks)-1]))
	var total int
	for _, c := range chunks {
		total += len([]rune(c))
	}
	assert.GreaterOrEqual(t, total, len([]rune(text)))
}
