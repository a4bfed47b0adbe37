package memory

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation entry. Immutable once appended.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Language  string    `json:"language,omitempty"`
}

// session holds one conversation. Guarded by its own mutex so that
// appends to different sessions never contend.
type session struct {
	mu        sync.Mutex
	userID    string
	messages  []Message
	createdAt time.Time
	updatedAt time.Time
}

// Statistics summarizes a single conversation.
type Statistics struct {
	SessionID         string         `json:"session_id"`
	UserID            string         `json:"user_id,omitempty"`
	TotalMessages     int            `json:"total_messages"`
	UserMessages      int            `json:"user_messages"`
	AssistantMessages int            `json:"assistant_messages"`
	Languages         map[string]int `json:"languages"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	LastMessage       string         `json:"last_message,omitempty"`
}

// Summary is a deterministic keyword-bucket digest of user messages.
type Summary struct {
	SessionID          string   `json:"session_id"`
	Summary            string   `json:"summary"`
	ConversationLength int      `json:"conversation_length"`
	MainTopics         []string `json:"main_topics"`
}

// StoreStats aggregates process-wide memory usage.
type StoreStats struct {
	TotalConversations int `json:"total_conversations"`
	TotalUsers         int `json:"total_users"`
	TotalMessages      int `json:"total_messages"`
	ActiveSessions     int `json:"active_sessions"`
	UserPreferences    int `json:"user_preferences"`
}

// ExportedSession is the stable serialized snapshot of one session.
type ExportedSession struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

var topicBuckets = []struct {
	topic    string
	keywords []string
}{
	{"价格咨询", []string{"价格", "多少钱", "费用"}},
	{"物流问题", []string{"物流", "快递", "配送", "发货"}},
	{"售后服务", []string{"退货", "换货", "退款"}},
	{"商品信息", []string{"商品", "产品", "功能"}},
}

// Store owns all session and preference state for the process lifetime.
// Sessions are created lazily on first append and removed by Clear or
// SweepExpired; nothing is persisted across restarts.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session

	prefsMu sync.Mutex
	prefs   *cache.Cache

	maxHistory int
}

// NewStore creates a session store bounded to maxHistory messages per
// session.
func NewStore(maxHistory int) *Store {
	if maxHistory <= 0 {
		maxHistory = 10
	}
	return &Store{
		sessions:   make(map[string]*session),
		prefs:      cache.New(cache.NoExpiration, 0),
		maxHistory: maxHistory,
	}
}

// AppendMessage appends one message, creating the session when absent.
// Appends to a session are serialized; truncation and updated_at refresh
// happen atomically with the append.
func (s *Store) AppendMessage(sessionID, userID, role, content, lang string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("invalid message role: %q", role)
	}

	now := time.Now()

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{
			userID:    userID,
			createdAt: now,
			updatedAt: now,
		}
		s.sessions[sessionID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.userID == "" && userID != "" {
		sess.userID = userID
	}
	sess.messages = append(sess.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
		Language:  lang,
	})
	sess.updatedAt = now

	// FIFO truncation: the oldest entries go first
	if overflow := len(sess.messages) - s.maxHistory; overflow > 0 {
		sess.messages = append([]Message(nil), sess.messages[overflow:]...)
	}

	return nil
}

// History returns the most recent limit messages in original order.
// limit <= 0 returns everything. Unknown sessions yield an empty slice.
func (s *Store) History(sessionID string, limit int) []Message {
	sess := s.lookup(sessionID)
	if sess == nil {
		return []Message{}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	msgs := sess.messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// ContextText renders the last maxMessages as "<role-label>: <content>"
// lines for use as generation context.
func (s *Store) ContextText(sessionID string, maxMessages int) string {
	msgs := s.History(sessionID, maxMessages)
	if len(msgs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		label := "用户"
		if msg.Role == RoleAssistant {
			label = "助手"
		}
		parts = append(parts, label+": "+msg.Content)
	}
	return strings.Join(parts, "\n")
}

// Statistics returns conversation counters; ok is false for unknown ids.
func (s *Store) Statistics(sessionID string) (Statistics, bool) {
	sess := s.lookup(sessionID)
	if sess == nil {
		return Statistics{}, false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	stats := Statistics{
		SessionID: sessionID,
		UserID:    sess.userID,
		Languages: make(map[string]int),
		CreatedAt: sess.createdAt,
		UpdatedAt: sess.updatedAt,
	}
	for _, msg := range sess.messages {
		stats.TotalMessages++
		if msg.Role == RoleUser {
			stats.UserMessages++
		} else {
			stats.AssistantMessages++
		}
		if msg.Language != "" {
			stats.Languages[msg.Language]++
		}
	}
	if n := len(sess.messages); n > 0 {
		stats.LastMessage = sess.messages[n-1].Content
	}
	return stats, true
}

// Summarize buckets user messages into fixed commerce topics.
func (s *Store) Summarize(sessionID string) Summary {
	msgs := s.History(sessionID, 0)

	summary := Summary{
		SessionID:          sessionID,
		ConversationLength: len(msgs),
		MainTopics:         []string{},
	}
	if len(msgs) == 0 {
		summary.Summary = "无对话内容"
		return summary
	}

	hasUserMessage := false
	seen := make(map[string]bool)
	for _, msg := range msgs {
		if msg.Role != RoleUser {
			continue
		}
		hasUserMessage = true
		for _, bucket := range topicBuckets {
			if seen[bucket.topic] {
				continue
			}
			for _, kw := range bucket.keywords {
				if strings.Contains(msg.Content, kw) {
					seen[bucket.topic] = true
					summary.MainTopics = append(summary.MainTopics, bucket.topic)
					break
				}
			}
		}
	}

	switch {
	case !hasUserMessage:
		summary.Summary = "用户未发送消息"
	case len(summary.MainTopics) > 0:
		summary.Summary = "用户主要咨询：" + strings.Join(summary.MainTopics, ", ")
	default:
		summary.Summary = "一般性咨询"
	}
	return summary
}

// Clear removes the session entirely. Idempotent.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// SweepExpired removes every session idle longer than ttl and returns
// the removal count. The cutoff is fixed when the sweep starts, so
// sessions touched afterwards survive.
func (s *Store) SweepExpired(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	// Snapshot candidates under the read lock, then remove one by one
	// so appends are never blocked for the whole scan.
	s.mu.RLock()
	candidates := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		candidates = append(candidates, id)
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range candidates {
		sess := s.lookup(id)
		if sess == nil {
			continue
		}
		sess.mu.Lock()
		expired := sess.updatedAt.Before(cutoff)
		sess.mu.Unlock()
		if !expired {
			continue
		}

		s.mu.Lock()
		// Re-check under the write lock: an append may have raced.
		if cur, ok := s.sessions[id]; ok {
			cur.mu.Lock()
			if cur.updatedAt.Before(cutoff) {
				delete(s.sessions, id)
				removed++
			}
			cur.mu.Unlock()
		}
		s.mu.Unlock()
	}
	return removed
}

// Preferences returns the stored bag for a user, never nil.
func (s *Store) Preferences(userID string) map[string]interface{} {
	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()

	if v, found := s.prefs.Get(userID); found {
		stored := v.(map[string]interface{})
		out := make(map[string]interface{}, len(stored))
		for k, val := range stored {
			out[k] = val
		}
		return out
	}
	return map[string]interface{}{}
}

// MergePreferences shallow-merges updates into the user's bag: new keys
// are added, existing keys overwritten, untouched keys preserved.
func (s *Store) MergePreferences(userID string, updates map[string]interface{}) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()

	merged := make(map[string]interface{})
	if v, found := s.prefs.Get(userID); found {
		for k, val := range v.(map[string]interface{}) {
			merged[k] = val
		}
	}
	for k, val := range updates {
		merged[k] = val
	}
	s.prefs.Set(userID, merged, cache.NoExpiration)
	return nil
}

// Export serializes the full session as indented JSON. ok is false for
// unknown ids.
func (s *Store) Export(sessionID string) (string, bool) {
	sess := s.lookup(sessionID)
	if sess == nil {
		return "", false
	}

	sess.mu.Lock()
	snapshot := ExportedSession{
		SessionID: sessionID,
		UserID:    sess.userID,
		CreatedAt: sess.createdAt,
		UpdatedAt: sess.updatedAt,
		Messages:  append([]Message(nil), sess.messages...),
	}
	sess.mu.Unlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Import restores a session from an Export snapshot, replacing any
// session with the same id. Counterpart of Export.
func (s *Store) Import(snapshot string) error {
	var exported ExportedSession
	if err := json.Unmarshal([]byte(snapshot), &exported); err != nil {
		return fmt.Errorf("invalid session snapshot: %w", err)
	}
	if exported.SessionID == "" {
		return fmt.Errorf("snapshot has no session id")
	}

	s.mu.Lock()
	s.sessions[exported.SessionID] = &session{
		userID:    exported.UserID,
		messages:  exported.Messages,
		createdAt: exported.CreatedAt,
		updatedAt: exported.UpdatedAt,
	}
	s.mu.Unlock()
	return nil
}

// ActiveSessions lists every live session id, sorted for stable output.
func (s *Store) ActiveSessions() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Stats aggregates counters across all sessions and preference bags.
func (s *Store) Stats() StoreStats {
	s.mu.RLock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()

	stats := StoreStats{
		TotalConversations: len(sessions),
		ActiveSessions:     len(sessions),
		UserPreferences:    s.prefs.ItemCount(),
	}
	users := make(map[string]bool)
	for _, sess := range sessions {
		sess.mu.Lock()
		stats.TotalMessages += len(sess.messages)
		if sess.userID != "" {
			users[sess.userID] = true
		}
		sess.mu.Unlock()
	}
	stats.TotalUsers = len(users)
	return stats
}

func (s *Store) lookup(sessionID string) *session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID]
}
