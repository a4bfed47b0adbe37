package prompt

import (
	"strings"

	"commerce-agent-be/pkg/language"
)

// SystemPrompt is the fixed persona instruction sent with every turn.
const SystemPrompt = `你是一个专业的跨境电商客服Agent，具备以下能力：

1. 多语言支持：能够理解并回应中英文问题
2. 商品知识：熟悉商品信息、物流政策、使用方法等
3. 上下文记忆：能够记住对话历史，提供连贯的回答
4. 专业友好：回答准确、专业、友好

请根据用户问题提供准确、有用的回答。`

// SmallTalkContext replaces retrieved knowledge when a turn is pure
// small talk. Retrieval is skipped entirely for those turns.
const SmallTalkContext = "这是一个日常聊天场景，无需查询商品知识库，请自然友好地回复用户。"

// ContextualBuilder renders the per-turn chat prompt from the retrieved
// context, the recent conversation history and the user's question.
type ContextualBuilder struct {
	query       string
	contextText string
	historyText string
	language    string
}

func NewContextualBuilder(query, contextText, historyText, lang string) *ContextualBuilder {
	return &ContextualBuilder{
		query:       query,
		contextText: contextText,
		historyText: historyText,
		language:    lang,
	}
}

// Build assembles the prompt sections in a fixed order.
func (b *ContextualBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("基于以下信息回答用户问题：\n\n")
	b.writeContext(&prompt)
	b.writeHistory(&prompt)
	b.writeQuestion(&prompt)
	b.writeLanguageDirective(&prompt)

	return prompt.String()
}

func (b *ContextualBuilder) writeContext(prompt *strings.Builder) {
	prompt.WriteString("相关上下文：\n")
	if b.contextText == "" {
		prompt.WriteString("无")
	} else {
		prompt.WriteString(b.contextText)
	}
	prompt.WriteString("\n\n")
}

func (b *ContextualBuilder) writeHistory(prompt *strings.Builder) {
	prompt.WriteString("对话历史：\n")
	if b.historyText == "" {
		prompt.WriteString("无对话内容")
	} else {
		prompt.WriteString(b.historyText)
	}
	prompt.WriteString("\n\n")
}

func (b *ContextualBuilder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("用户问题：")
	prompt.WriteString(b.query)
	prompt.WriteString("\n\n")
}

func (b *ContextualBuilder) writeLanguageDirective(prompt *strings.Builder) {
	if b.language == language.English {
		prompt.WriteString("Please answer in English, be accurate, professional and friendly.")
		return
	}
	prompt.WriteString("请用中文回答，回答要准确、专业、友好。")
}
