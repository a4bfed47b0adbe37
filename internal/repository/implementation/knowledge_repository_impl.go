package implementation

import (
	"context"

	"commerce-agent-be/internal/entity"
	"commerce-agent-be/internal/mapper"
	"commerce-agent-be/internal/model"
	"commerce-agent-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) CreateItem(ctx context.Context, item *entity.KnowledgeItem) error {
	m := r.mapper.ItemToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ItemToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) CreateChunks(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.KnowledgeChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ChunkToModel(c)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ChunkToEntity(m)
	}
	return nil
}

func (r *KnowledgeRepositoryImpl) DeleteByItemId(ctx context.Context, itemId uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("knowledge_item_id = ?", itemId).
		Delete(&model.KnowledgeChunk{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.KnowledgeItem{}, itemId).Error
}

func (r *KnowledgeRepositoryImpl) FindItems(ctx context.Context, category, language string, limit, offset int) ([]*entity.KnowledgeItem, error) {
	var models []*model.KnowledgeItem

	query := r.db.WithContext(ctx).Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if language != "" {
		query = query.Where("language = ?", language)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ItemsToEntities(models), nil
}

func (r *KnowledgeRepositoryImpl) CountItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgeItem{}).Count(&count).Error
	return count, err
}

func (r *KnowledgeRepositoryImpl) CountChunks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgeChunk{}).Count(&count).Error
	return count, err
}

// SearchSimilar ranks chunks by cosine similarity to the query vector.
// Cosine distance in pgvector is 1 - cosine_similarity, so the score is
// computed as 1 - (embedding_value <=> query_vector).
func (r *KnowledgeRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, filter contract.SearchFilter) ([]*contract.ScoredKnowledgeChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.KnowledgeChunk
		Similarity   float64
		ItemTitle    string
		ItemCategory string
		ItemLanguage string
		ItemSource   string
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select(`knowledge_chunks.*,
			1 - (embedding_value <=> ?) as similarity,
			knowledge_items.title as item_title,
			knowledge_items.category as item_category,
			knowledge_items.language as item_language,
			knowledge_items.source as item_source`, queryVector).
		Joins("JOIN knowledge_items ON knowledge_items.id = knowledge_chunks.knowledge_item_id").
		Where("knowledge_chunks.deleted_at IS NULL").
		Where("knowledge_items.deleted_at IS NULL")

	if filter.Category != "" {
		query = query.Where("knowledge_items.category = ?", filter.Category)
	}
	if filter.Language != "" {
		query = query.Where("knowledge_items.language = ?", filter.Language)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredKnowledgeChunk{
			Chunk: r.mapper.ChunkToEntity(&res.KnowledgeChunk),
			Item: &entity.KnowledgeItem{
				Id:       res.KnowledgeChunk.KnowledgeItemId,
				Title:    res.ItemTitle,
				Category: res.ItemCategory,
				Language: res.ItemLanguage,
				Source:   res.ItemSource,
			},
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
