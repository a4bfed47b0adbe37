package rag

import "context"

// Result is one ranked retrieval hit. Transient, never persisted.
type Result struct {
	Content  string                 `json:"content"`
	Score    float64                `json:"score"`
	Source   string                 `json:"source"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Filters narrows a retrieval query by equality on optional fields.
type Filters struct {
	Category string
	Language string
}

// Retriever is the external vector-retrieval collaborator. It may fail
// or time out, and may return fewer than topK results.
type Retriever interface {
	Query(ctx context.Context, text string, topK int, filters Filters) ([]Result, error)
}
