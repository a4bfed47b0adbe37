package memory

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndHistory(t *testing.T) {
	store := NewStore(10)

	require.NoError(t, store.AppendMessage("s1", "u1", RoleUser, "你好", "zh"))
	require.NoError(t, store.AppendMessage("s1", "u1", RoleAssistant, "您好，有什么可以帮您？", "zh"))

	msgs := store.History("s1", 0)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, "你好", msgs[0].Content)
	assert.Equal(t, "zh", msgs[0].Language)
}

func TestAppendRejectsInvalidRole(t *testing.T) {
	store := NewStore(10)
	assert.Error(t, store.AppendMessage("s1", "", "system", "x", ""))
	assert.Error(t, store.AppendMessage("", "", RoleUser, "x", ""))
	assert.Empty(t, store.History("s1", 0))
}

func TestHistoryTruncationFIFO(t *testing.T) {
	store := NewStore(5)

	for i := 0; i < 12; i++ {
		require.NoError(t, store.AppendMessage("s1", "", RoleUser, fmt.Sprintf("msg-%d", i), "en"))
	}

	msgs := store.History("s1", 0)
	require.Len(t, msgs, 5)
	// Oldest dropped first: the newest five remain in order
	for i, msg := range msgs {
		assert.Equal(t, fmt.Sprintf("msg-%d", i+7), msg.Content)
	}
}

func TestHistoryLimit(t *testing.T) {
	store := NewStore(10)
	for i := 0; i < 6; i++ {
		require.NoError(t, store.AppendMessage("s1", "", RoleUser, fmt.Sprintf("m%d", i), ""))
	}

	msgs := store.History("s1", 2)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m4", msgs[0].Content)
	assert.Equal(t, "m5", msgs[1].Content)

	assert.Empty(t, store.History("unknown", 5))
}

func TestContextText(t *testing.T) {
	store := NewStore(10)
	require.NoError(t, store.AppendMessage("s1", "", RoleUser, "这个商品多少钱？", "zh"))
	require.NoError(t, store.AppendMessage("s1", "", RoleAssistant, "这款商品售价99元。", "zh"))

	ctx := store.ContextText("s1", 5)
	assert.Equal(t, "用户: 这个商品多少钱？\n助手: 这款商品售价99元。", ctx)

	assert.Equal(t, "", store.ContextText("unknown", 5))
}

func TestStatistics(t *testing.T) {
	store := NewStore(10)
	require.NoError(t, store.AppendMessage("s1", "u1", RoleUser, "hello", "en"))
	require.NoError(t, store.AppendMessage("s1", "u1", RoleAssistant, "hi", "en"))
	require.NoError(t, store.AppendMessage("s1", "u1", RoleUser, "你好", "zh"))

	stats, ok := store.Statistics("s1")
	require.True(t, ok)
	assert.Equal(t, "u1", stats.UserID)
	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, 2, stats.UserMessages)
	assert.Equal(t, 1, stats.AssistantMessages)
	assert.Equal(t, map[string]int{"en": 2, "zh": 1}, stats.Languages)
	assert.Equal(t, "你好", stats.LastMessage)
	assert.False(t, stats.UpdatedAt.Before(stats.CreatedAt))

	_, ok = store.Statistics("unknown")
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	store := NewStore(10)

	empty := store.Summarize("unknown")
	assert.Equal(t, "无对话内容", empty.Summary)

	require.NoError(t, store.AppendMessage("s0", "", RoleAssistant, "您好", "zh"))
	noUser := store.Summarize("s0")
	assert.Equal(t, "用户未发送消息", noUser.Summary)

	require.NoError(t, store.AppendMessage("s1", "", RoleUser, "这个商品多少钱？", "zh"))
	require.NoError(t, store.AppendMessage("s1", "", RoleUser, "物流要多久？", "zh"))
	summary := store.Summarize("s1")
	assert.Equal(t, "用户主要咨询：价格咨询, 商品信息, 物流问题", summary.Summary)
	assert.Equal(t, []string{"价格咨询", "商品信息", "物流问题"}, summary.MainTopics)
	assert.Equal(t, 2, summary.ConversationLength)

	require.NoError(t, store.AppendMessage("s2", "", RoleUser, "哈哈", "zh"))
	assert.Equal(t, "一般性咨询", store.Summarize("s2").Summary)
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStore(10)
	require.NoError(t, store.AppendMessage("s1", "", RoleUser, "hi", "en"))

	store.Clear("s1")
	assert.Empty(t, store.History("s1", 0))

	// Clearing an absent session is still fine
	store.Clear("s1")
	store.Clear("never-existed")
}

func TestSweepExpired(t *testing.T) {
	store := NewStore(10)
	require.NoError(t, store.AppendMessage("old1", "", RoleUser, "a", ""))
	require.NoError(t, store.AppendMessage("old2", "", RoleUser, "b", ""))

	time.Sleep(10 * time.Millisecond)

	removed := store.SweepExpired(5 * time.Millisecond)
	assert.Equal(t, 2, removed)
	assert.Empty(t, store.ActiveSessions())

	// A fresh session survives a sweep with a generous ttl
	require.NoError(t, store.AppendMessage("fresh", "", RoleUser, "c", ""))
	assert.Equal(t, 0, store.SweepExpired(time.Hour))
	assert.Equal(t, []string{"fresh"}, store.ActiveSessions())
}

func TestMergePreferences(t *testing.T) {
	store := NewStore(10)

	require.NoError(t, store.MergePreferences("u1", map[string]interface{}{"x": 1}))
	require.NoError(t, store.MergePreferences("u1", map[string]interface{}{"y": 2}))

	prefs := store.Preferences("u1")
	assert.Equal(t, 1, prefs["x"])
	assert.Equal(t, 2, prefs["y"])

	// Overwrite keeps untouched keys
	require.NoError(t, store.MergePreferences("u1", map[string]interface{}{"x": 9}))
	prefs = store.Preferences("u1")
	assert.Equal(t, 9, prefs["x"])
	assert.Equal(t, 2, prefs["y"])

	assert.Empty(t, store.Preferences("unknown"))
	assert.Error(t, store.MergePreferences("", map[string]interface{}{"x": 1}))
}

func TestExportImportRoundTrip(t *testing.T) {
	store := NewStore(10)
	require.NoError(t, store.AppendMessage("s1", "u1", RoleUser, "这个商品多少钱？", "zh"))
	require.NoError(t, store.AppendMessage("s1", "u1", RoleAssistant, "售价99元。", "zh"))

	snapshot, ok := store.Export("s1")
	require.True(t, ok)

	var exported ExportedSession
	require.NoError(t, json.Unmarshal([]byte(snapshot), &exported))
	assert.Equal(t, "s1", exported.SessionID)
	assert.Equal(t, "u1", exported.UserID)
	require.Len(t, exported.Messages, 2)

	// Round-trip into a fresh store reproduces the ordered sequence
	other := NewStore(10)
	require.NoError(t, other.Import(snapshot))
	restored := other.History("s1", 0)
	require.Len(t, restored, 2)
	assert.Equal(t, store.History("s1", 0), restored)

	_, ok = store.Export("unknown")
	assert.False(t, ok)
	assert.Error(t, other.Import("not-json"))
}

func TestStoreStats(t *testing.T) {
	store := NewStore(10)
	require.NoError(t, store.AppendMessage("s1", "u1", RoleUser, "a", ""))
	require.NoError(t, store.AppendMessage("s2", "u2", RoleUser, "b", ""))
	require.NoError(t, store.AppendMessage("s3", "u1", RoleUser, "c", ""))
	require.NoError(t, store.MergePreferences("u1", map[string]interface{}{"lang": "zh"}))

	stats := store.Stats()
	assert.Equal(t, 3, stats.TotalConversations)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, 3, stats.ActiveSessions)
	assert.Equal(t, 1, stats.UserPreferences)
}

func TestConcurrentAppendsSameSession(t *testing.T) {
	store := NewStore(50)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.AppendMessage("s1", "", RoleUser, fmt.Sprintf("m%d", n), "")
		}(i)
	}
	wg.Wait()

	msgs := store.History("s1", 0)
	assert.Len(t, msgs, 20)
	// Timestamps must be monotonically non-decreasing in stored order
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].Timestamp.Before(msgs[i-1].Timestamp))
	}
}
