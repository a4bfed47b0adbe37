package service

import (
	"commerce-agent-be/internal/dto"
	"commerce-agent-be/pkg/memory"
)

type IMemoryService interface {
	AppendUserMessage(sessionID, userID, content, lang string) error
	History(sessionID string, limit int) *dto.ChatHistoryResponse
	Summary(sessionID string) *dto.SessionSummaryResponse
	Statistics(sessionID string) (*dto.SessionStatisticsResponse, bool)
	Export(sessionID string) (string, bool)
	Clear(sessionID string)
	Stats() *dto.MemoryStatsResponse
	ActiveSessions() *dto.ActiveSessionsResponse
	Preferences(userID string) *dto.UserPreferencesResponse
	MergePreferences(userID string, prefs map[string]interface{}) (*dto.UserPreferencesResponse, error)
}

type memoryService struct {
	store *memory.Store
}

func NewMemoryService(store *memory.Store) IMemoryService {
	return &memoryService{store: store}
}

func (s *memoryService) AppendUserMessage(sessionID, userID, content, lang string) error {
	return s.store.AppendMessage(sessionID, userID, memory.RoleUser, content, lang)
}

func (s *memoryService) History(sessionID string, limit int) *dto.ChatHistoryResponse {
	messages := s.store.History(sessionID, limit)

	out := make([]dto.ChatMessageDTO, len(messages))
	for i, m := range messages {
		out[i] = dto.ChatMessageDTO{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Language:  m.Language,
		}
	}
	return &dto.ChatHistoryResponse{
		SessionID: sessionID,
		Messages:  out,
		Count:     len(out),
	}
}

func (s *memoryService) Summary(sessionID string) *dto.SessionSummaryResponse {
	summary := s.store.Summarize(sessionID)
	return &dto.SessionSummaryResponse{
		SessionID:          summary.SessionID,
		Summary:            summary.Summary,
		ConversationLength: summary.ConversationLength,
		MainTopics:         summary.MainTopics,
	}
}

func (s *memoryService) Statistics(sessionID string) (*dto.SessionStatisticsResponse, bool) {
	stats, ok := s.store.Statistics(sessionID)
	if !ok {
		return nil, false
	}
	return &dto.SessionStatisticsResponse{
		SessionID:         stats.SessionID,
		UserID:            stats.UserID,
		TotalMessages:     stats.TotalMessages,
		UserMessages:      stats.UserMessages,
		AssistantMessages: stats.AssistantMessages,
		Languages:         stats.Languages,
		CreatedAt:         stats.CreatedAt,
		UpdatedAt:         stats.UpdatedAt,
		LastMessage:       stats.LastMessage,
	}, true
}

func (s *memoryService) Export(sessionID string) (string, bool) {
	return s.store.Export(sessionID)
}

func (s *memoryService) Clear(sessionID string) {
	s.store.Clear(sessionID)
}

func (s *memoryService) Stats() *dto.MemoryStatsResponse {
	stats := s.store.Stats()
	return &dto.MemoryStatsResponse{
		TotalConversations: stats.TotalConversations,
		TotalUsers:         stats.TotalUsers,
		TotalMessages:      stats.TotalMessages,
		ActiveSessions:     stats.ActiveSessions,
		UserPreferences:    stats.UserPreferences,
	}
}

func (s *memoryService) ActiveSessions() *dto.ActiveSessionsResponse {
	sessions := s.store.ActiveSessions()
	return &dto.ActiveSessionsResponse{
		Sessions: sessions,
		Count:    len(sessions),
	}
}

func (s *memoryService) Preferences(userID string) *dto.UserPreferencesResponse {
	return &dto.UserPreferencesResponse{
		UserID:      userID,
		Preferences: s.store.Preferences(userID),
	}
}

func (s *memoryService) MergePreferences(userID string, prefs map[string]interface{}) (*dto.UserPreferencesResponse, error) {
	if err := s.store.MergePreferences(userID, prefs); err != nil {
		return nil, err
	}
	return s.Preferences(userID), nil
}
