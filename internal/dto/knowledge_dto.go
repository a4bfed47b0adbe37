package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddKnowledgeRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Content  string `json:"content" validate:"required,min=1"`
	Category string `json:"category,omitempty"`
	Language string `json:"language,omitempty" validate:"omitempty,oneof=zh en"`
	Source   string `json:"source,omitempty"`
}

type AddKnowledgeResponse struct {
	Id uuid.UUID `json:"id"`
}

type KnowledgeItemResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	Language  string    `json:"language,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SearchKnowledgeRequest struct {
	Query    string `json:"query" validate:"required,min=1"`
	TopK     int    `json:"top_k,omitempty" validate:"omitempty,min=1,max=50"`
	Category string `json:"category,omitempty"`
	Language string `json:"language,omitempty" validate:"omitempty,oneof=zh en"`
}

type SearchResultDTO struct {
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
	Source   string  `json:"source"`
	Category string  `json:"category,omitempty"`
}

type SearchKnowledgeResponse struct {
	Query   string            `json:"query"`
	Results []SearchResultDTO `json:"results"`
	Count   int               `json:"count"`
}

type KnowledgeInfoResponse struct {
	ItemCount  int64 `json:"item_count"`
	ChunkCount int64 `json:"chunk_count"`
}

// IngestKnowledgeMessage is the payload published for asynchronous
// embedding of a newly created knowledge item.
type IngestKnowledgeMessage struct {
	KnowledgeItemId uuid.UUID `json:"knowledge_item_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
}
