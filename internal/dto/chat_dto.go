package dto

import "time"

type ChatRequest struct {
	Message   string `json:"message" validate:"required,min=1,max=4000"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Language  string `json:"language,omitempty" validate:"omitempty,oneof=zh en"`
}

type ChatResponse struct {
	Response   string    `json:"response"`
	Language   string    `json:"language"`
	Confidence float64   `json:"confidence"`
	Sources    []string  `json:"sources"`
	SessionID  string    `json:"session_id"`
	Timestamp  time.Time `json:"timestamp"`
}

type ChatMessageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Language  string    `json:"language,omitempty"`
}

type ChatHistoryResponse struct {
	SessionID string           `json:"session_id"`
	Messages  []ChatMessageDTO `json:"messages"`
	Count     int              `json:"count"`
}

type SessionSummaryResponse struct {
	SessionID          string   `json:"session_id"`
	Summary            string   `json:"summary"`
	ConversationLength int      `json:"conversation_length"`
	MainTopics         []string `json:"main_topics"`
}

type SessionStatisticsResponse struct {
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
