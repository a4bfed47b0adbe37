package dto

type MemoryStatsResponse struct {
	TotalConversations int `json:"total_conversations"`
	TotalUsers         int `json:"total_users"`
	TotalMessages      int `json:"total_messages"`
	ActiveSessions     int `json:"active_sessions"`
	UserPreferences    int `json:"user_preferences"`
}

type ActiveSessionsResponse struct {
	Sessions []string `json:"sessions"`
	Count    int      `json:"count"`
}

type UserPreferencesResponse struct {
	UserID      string                 `json:"user_id"`
	Preferences map[string]interface{} `json:"preferences"`
}

type UpdatePreferencesRequest struct {
	Preferences map[string]interface{} `json:"preferences" validate:"required"`
}
