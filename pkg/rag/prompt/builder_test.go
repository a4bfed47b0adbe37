package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"commerce-agent-be/pkg/language"
)

func TestBuildChinesePrompt(t *testing.T) {
	b := NewContextualBuilder(
		"这个商品多少钱？",
		"内容: 售价99元。\n来源: pricing.md",
		"用户: 你好\n助手: 您好，有什么可以帮您？",
		language.Chinese,
	)

	prompt := b.Build()

	assert.True(t, strings.HasPrefix(prompt, "基于以下信息回答用户问题：\n\n"))
	assert.Contains(t, prompt, "相关上下文：\n内容: 售价99元。\n来源: pricing.md\n\n")
	assert.Contains(t, prompt, "对话历史：\n用户: 你好\n助手: 您好，有什么可以帮您？\n\n")
	assert.Contains(t, prompt, "用户问题：这个商品多少钱？\n\n")
	assert.True(t, strings.HasSuffix(prompt, "请用中文回答，回答要准确、专业、友好。"))
}

func TestBuildEnglishDirective(t *testing.T) {
	b := NewContextualBuilder("How much is it?", "内容: $15.\n来源: pricing.md", "", language.English)

	prompt := b.Build()

	assert.True(t, strings.HasSuffix(prompt, "Please answer in English, be accurate, professional and friendly."))
	assert.NotContains(t, prompt, "请用中文回答")
}

func TestBuildEmptySections(t *testing.T) {
	b := NewContextualBuilder("随便问问", "", "", language.Chinese)

	prompt := b.Build()

	assert.Contains(t, prompt, "相关上下文：\n无\n\n")
	assert.Contains(t, prompt, "对话历史：\n无对话内容\n\n")
}

func TestSystemPromptPersona(t *testing.T) {
	assert.Contains(t, SystemPrompt, "跨境电商客服")
	assert.Contains(t, SystemPrompt, "多语言支持")
}
