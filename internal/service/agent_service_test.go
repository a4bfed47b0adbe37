package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-agent-be/internal/config"
	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/pkg/logger"
	"commerce-agent-be/pkg/language"
	"commerce-agent-be/pkg/llm"
	"commerce-agent-be/pkg/memory"
	"commerce-agent-be/pkg/rag"
	"commerce-agent-be/pkg/rag/intent"
)

type fakeLLM struct {
	classifyLabel string
	chatReply     string
	chatErr       error
	lastPrompt    string
}

func (f *fakeLLM) Chat(_ context.Context, messages []llm.Message, _ ...llm.Option) (string, error) {
	if len(messages) > 0 {
		f.lastPrompt = messages[len(messages)-1].Content
	}
	return f.chatReply, f.chatErr
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	if f.classifyLabel == "" {
		return "", errors.New("no label configured")
	}
	return f.classifyLabel, nil
}

type fakeRetriever struct {
	results []rag.Result
	err     error
	called  bool
}

func (f *fakeRetriever) Query(_ context.Context, _ string, _ int, _ rag.Filters) ([]rag.Result, error) {
	f.called = true
	return f.results, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Ai: config.AIConfig{
			Temperature:    0.7,
			MaxTokens:      1000,
			RequestTimeout: 30 * time.Second,
		},
		Rag: config.RAGConfig{
			TopKRetrieval: 5,
		},
		Language: config.LanguageConfig{
			DefaultLanguage: language.Chinese,
		},
	}
}

func newTestAgent(llmStub *fakeLLM, retriever *fakeRetriever) (IAgentService, *memory.Store) {
	log := logger.NewNopLogger()
	store := memory.NewStore(10)
	detector := language.NewDetector(language.Chinese)
	classifier := intent.NewClassifier(llmStub, log)
	coordinator := rag.NewCoordinator(retriever, log)
	return NewAgentService(store, detector, classifier, coordinator, llmStub, testConfig(), log), store
}

func TestProcessChatBusinessTurn(t *testing.T) {
	llmStub := &fakeLLM{classifyLabel: "business", chatReply: "这款商品售价99元。"}
	retriever := &fakeRetriever{results: []rag.Result{
		{Content: "售价99元。", Source: "pricing.md", Score: 0.9},
	}}
	agent, store := newTestAgent(llmStub, retriever)

	resp := agent.ProcessChat(context.Background(), &dto.ChatRequest{
		Message:   "这个商品多少钱？",
		SessionID: "sess-1",
		UserID:    "u-1",
	})

	assert.Equal(t, "这款商品售价99元。", resp.Response)
	assert.Equal(t, language.Chinese, resp.Language)
	assert.Equal(t, 0.9, resp.Confidence)
	assert.Equal(t, []string{"pricing.md"}, resp.Sources)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.True(t, retriever.called)

	// assistant reply is recorded in session history
	msgs := store.History("sess-1", 0)
	require.Len(t, msgs, 1)
	assert.Equal(t, memory.RoleAssistant, msgs[0].Role)
}

func TestProcessChatSmallTalkSkipsRetrieval(t *testing.T) {
	llmStub := &fakeLLM{classifyLabel: "chat", chatReply: "You're welcome! Goodbye!"}
	retriever := &fakeRetriever{results: []rag.Result{
		{Content: "should never appear", Source: "junk.md"},
	}}
	agent, _ := newTestAgent(llmStub, retriever)

	resp := agent.ProcessChat(context.Background(), &dto.ChatRequest{
		Message:   "Thank you, bye!",
		SessionID: "sess-2",
	})

	assert.Equal(t, language.English, resp.Language)
	assert.Equal(t, 0.9, resp.Confidence)
	assert.Empty(t, resp.Sources)
	assert.False(t, retriever.called)
}

func TestProcessChatRetrievalFailureStaysConfident(t *testing.T) {
	llmStub := &fakeLLM{classifyLabel: "business", chatReply: "我需要更多信息才能回答。"}
	retriever := &fakeRetriever{err: errors.New("vector store down")}
	agent, _ := newTestAgent(llmStub, retriever)

	resp := agent.ProcessChat(context.Background(), &dto.ChatRequest{
		Message:   "物流要多久？",
		SessionID: "sess-3",
	})

	// degraded retrieval is not a turn failure
	assert.Equal(t, 0.9, resp.Confidence)
	assert.Empty(t, resp.Sources)
	assert.Equal(t, "我需要更多信息才能回答。", resp.Response)
}

func TestProcessChatLLMFailureReturnsApology(t *testing.T) {
	llmStub := &fakeLLM{classifyLabel: "business", chatErr: errors.New("completion service unavailable")}
	agent, _ := newTestAgent(llmStub, &fakeRetriever{})

	resp := agent.ProcessChat(context.Background(), &dto.ChatRequest{
		Message:   "这个商品多少钱？",
		SessionID: "sess-4",
	})

	assert.Equal(t, apologyZh, resp.Response)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.Empty(t, resp.Sources)
	assert.Equal(t, "sess-4", resp.SessionID)
}

func TestProcessChatEnglishApology(t *testing.T) {
	llmStub := &fakeLLM{classifyLabel: "chat", chatErr: errors.New("down")}
	agent, _ := newTestAgent(llmStub, &fakeRetriever{})

	resp := agent.ProcessChat(context.Background(), &dto.ChatRequest{
		Message: "Hello, how are you today?",
	})

	assert.Equal(t, apologyEn, resp.Response)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.NotEmpty(t, resp.SessionID, "missing session id must be generated")
}

func TestProcessChatLanguageOverride(t *testing.T) {
	llmStub := &fakeLLM{classifyLabel: "chat", chatReply: "Hello!"}
	agent, _ := newTestAgent(llmStub, &fakeRetriever{})

	resp := agent.ProcessChat(context.Background(), &dto.ChatRequest{
		Message:  "你好",
		Language: language.English,
	})

	assert.Equal(t, language.English, resp.Language)
}

func TestProcessChatPromptIncludesHistoryAndContext(t *testing.T) {
	llmStub := &fakeLLM{classifyLabel: "business", chatReply: "好的"}
	retriever := &fakeRetriever{results: []rag.Result{
		{Content: "支持7天退货。", Source: "returns.md"},
	}}
	agent, store := newTestAgent(llmStub, retriever)

	require.NoError(t, store.AppendMessage("sess-5", "u-1", memory.RoleUser, "你好", language.Chinese))
	require.NoError(t, store.AppendMessage("sess-5", "u-1", memory.RoleAssistant, "您好！", language.Chinese))

	agent.ProcessChat(context.Background(), &dto.ChatRequest{
		Message:   "可以退货吗？",
		SessionID: "sess-5",
	})

	assert.True(t, strings.Contains(llmStub.lastPrompt, "内容: 支持7天退货。"))
	assert.True(t, strings.Contains(llmStub.lastPrompt, "用户: 你好"))
	assert.True(t, strings.Contains(llmStub.lastPrompt, "用户问题：可以退货吗？"))
}
