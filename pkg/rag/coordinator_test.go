package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"commerce-agent-be/internal/pkg/logger"
)

type stubRetriever struct {
	results []Result
	err     error
	gotTopK int
	gotText string
}

func (s *stubRetriever) Query(_ context.Context, text string, topK int, _ Filters) ([]Result, error) {
	s.gotText = text
	s.gotTopK = topK
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func TestRelevantContextFormatsBlocks(t *testing.T) {
	retriever := &stubRetriever{
		results: []Result{
			{Content: "这款商品售价99元。", Source: "pricing.md", Score: 0.92},
			{Content: "支持7天无理由退货。", Source: "returns.md", Score: 0.81},
		},
	}
	c := NewCoordinator(retriever, logger.NewNopLogger())

	contextText, sources := c.RelevantContext(context.Background(), "价格", 5, Filters{})

	expected := "内容: 这款商品售价99元。\n来源: pricing.md\n\n内容: 支持7天无理由退货。\n来源: returns.md"
	assert.Equal(t, expected, contextText)
	assert.Equal(t, []string{"pricing.md", "returns.md"}, sources)
	assert.Equal(t, 5, retriever.gotTopK)
	assert.Equal(t, "价格", retriever.gotText)
}

func TestRelevantContextEmptyResults(t *testing.T) {
	c := NewCoordinator(&stubRetriever{results: nil}, logger.NewNopLogger())

	contextText, sources := c.RelevantContext(context.Background(), "无关问题", 5, Filters{})

	assert.Equal(t, "", contextText)
	assert.NotNil(t, sources)
	assert.Empty(t, sources)
}

func TestRelevantContextRetrieverFailure(t *testing.T) {
	c := NewCoordinator(&stubRetriever{err: errors.New("connection refused")}, logger.NewNopLogger())

	contextText, sources := c.RelevantContext(context.Background(), "价格", 5, Filters{})

	assert.Equal(t, "", contextText)
	assert.NotNil(t, sources)
	assert.Empty(t, sources)
}

func TestSearchPropagatesError(t *testing.T) {
	c := NewCoordinator(&stubRetriever{err: errors.New("timeout")}, logger.NewNopLogger())

	_, err := c.Search(context.Background(), "价格", 5, Filters{})
	assert.Error(t, err)
}

func TestExtractSources(t *testing.T) {
	tests := []struct {
		name        string
		contextText string
		expected    []string
	}{
		{
			name:        "two blocks",
			contextText: "内容: a\n来源: doc-1\n\n内容: b\n来源: doc-2",
			expected:    []string{"doc-1", "doc-2"},
		},
		{
			name:        "empty context",
			contextText: "",
			expected:    []string{},
		},
		{
			name:        "no source lines",
			contextText: "内容: a",
			expected:    []string{},
		},
		{
			name:        "blank source skipped",
			contextText: "来源: \n来源: doc-1",
			expected:    []string{"doc-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSources(tt.contextText))
		})
	}
}
