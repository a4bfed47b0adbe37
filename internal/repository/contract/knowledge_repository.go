package contract

import (
	"context"

	"commerce-agent-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredKnowledgeChunk pairs a chunk with its cosine similarity to a
// query vector, in [0, 1].
type ScoredKnowledgeChunk struct {
	Chunk      *entity.KnowledgeChunk
	Item       *entity.KnowledgeItem
	Similarity float64
}

// SearchFilter narrows similarity search by equality on item fields.
// Empty fields match everything.
type SearchFilter struct {
	Category string
	Language string
}

type KnowledgeRepository interface {
	CreateItem(ctx context.Context, item *entity.KnowledgeItem) error
	CreateChunks(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	DeleteByItemId(ctx context.Context, itemId uuid.UUID) error
	FindItems(ctx context.Context, category, language string, limit, offset int) ([]*entity.KnowledgeItem, error)
	CountItems(ctx context.Context) (int64, error)
	CountChunks(ctx context.Context) (int64, error)
	SearchSimilar(ctx context.Context, embedding []float32, limit int, filter SearchFilter) ([]*ScoredKnowledgeChunk, error)
}
