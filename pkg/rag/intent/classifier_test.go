package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"commerce-agent-be/internal/pkg/logger"
	"commerce-agent-be/pkg/llm"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return s.response, s.err
}

func TestClassifyUsesLLMLabel(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{"chat label", "chat", IntentChat},
		{"business label", "business", IntentBusiness},
		{"label with whitespace", "  Chat \n", IntentChat},
		{"uppercase label", "BUSINESS", IntentBusiness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&stubLLM{response: tt.response}, logger.NewNopLogger())
			assert.Equal(t, tt.expected, c.Classify(context.Background(), "随便说点什么"))
		})
	}
}

func TestClassifyFallbackOnLLMError(t *testing.T) {
	c := NewClassifier(&stubLLM{err: errors.New("upstream unavailable")}, logger.NewNopLogger())

	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{"chinese price question", "这个商品多少钱？", IntentBusiness},
		{"english shipping question", "When is my delivery arriving?", IntentBusiness},
		{"greeting", "你好", IntentChat},
		{"english thanks", "Thank you, bye!", IntentChat},
		{"mixed greeting and price goes business", "你好，这个商品多少钱？", IntentBusiness},
		{"gibberish defaults to business", "asdf qwer", IntentBusiness},
		{"empty defaults to business", "", IntentBusiness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(context.Background(), tt.message))
		})
	}
}

func TestClassifyFallbackOnOffFormatReply(t *testing.T) {
	c := NewClassifier(&stubLLM{response: "这是一个业务问题"}, logger.NewNopLogger())

	assert.Equal(t, IntentBusiness, c.Classify(context.Background(), "退款要多久？"))
	assert.Equal(t, IntentChat, c.Classify(context.Background(), "你好呀"))
}

func TestKeywordFallbackCaseInsensitive(t *testing.T) {
	c := NewClassifier(&stubLLM{err: errors.New("down")}, logger.NewNopLogger())

	assert.Equal(t, IntentBusiness, c.Classify(context.Background(), "HOW MUCH is this?"))
	assert.Equal(t, IntentChat, c.Classify(context.Background(), "HELLO there"))
}
