package intent

import (
	"context"
	"strings"

	"commerce-agent-be/internal/pkg/logger"
	"commerce-agent-be/pkg/llm"
)

// Intent categories.
const (
	IntentChat     = "chat"
	IntentBusiness = "business"
)

// businessKeywords are checked before chatKeywords: a message touching a
// commerce topic is business even when it also contains a greeting.
var businessKeywords = []string{
	"价格", "多少钱", "费用", "购买",
	"物流", "快递", "配送", "发货",
	"退货", "换货", "退款",
	"商品", "产品", "功能", "使用", "质量", "特点", "优惠",
	"price", "cost", "buy", "shipping", "delivery", "return", "refund",
	"product", "discount", "how much",
}

var chatKeywords = []string{
	"你好", "您好", "谢谢", "再见", "天气", "称呼", "名字",
	"hi", "hello", "thanks", "thank you", "bye", "goodbye", "how are you",
}

// Classifier decides whether a message is small talk or a commerce
// question. The LLM is the primary signal; keyword matching covers LLM
// failures and off-format replies, so classification always succeeds.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewClassifier(llmProvider llm.LLMProvider, log logger.ILogger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      log,
	}
}

// Classify returns IntentChat or IntentBusiness for a user message.
func (c *Classifier) Classify(ctx context.Context, message string) string {
	prompt := c.buildPrompt(message)

	response, err := c.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(10),
	)
	if err != nil {
		c.logger.Warn("IntentClassifier", "LLM classification failed, using keyword fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return c.keywordFallback(message)
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case IntentChat:
		return IntentChat
	case IntentBusiness:
		return IntentBusiness
	}

	c.logger.Warn("IntentClassifier", "Unexpected LLM label, using keyword fallback", map[string]interface{}{
		"response": response,
	})
	return c.keywordFallback(message)
}

func (c *Classifier) buildPrompt(message string) string {
	var prompt strings.Builder

	prompt.WriteString("请判断以下用户消息的意图类型。\n\n")
	prompt.WriteString("用户消息：")
	prompt.WriteString(message)
	prompt.WriteString("\n\n")
	prompt.WriteString("意图类型：\n")
	prompt.WriteString("- chat: 日常聊天、问候、闲聊（如：你好、谢谢、再见、天气等）\n")
	prompt.WriteString("- business: 业务咨询（如：商品价格、物流、退换货、产品功能等）\n\n")
	prompt.WriteString("只回答 chat 或 business，不要输出其他内容。")

	return prompt.String()
}

// keywordFallback scans business keywords first, then chat keywords.
// Unmatched messages default to business so commerce questions are never
// dismissed as small talk.
func (c *Classifier) keywordFallback(message string) string {
	lower := strings.ToLower(message)

	for _, kw := range businessKeywords {
		if strings.Contains(lower, kw) {
			return IntentBusiness
		}
	}
	for _, kw := range chatKeywords {
		if strings.Contains(lower, kw) {
			return IntentChat
		}
	}
	return IntentBusiness
}
