package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeItem struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Category  string
	Language  string
	Source    string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type KnowledgeChunk struct {
	Id              uuid.UUID
	Content         string
	EmbeddingValue  []float32
	KnowledgeItemId uuid.UUID
	ChunkIndex      int
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
