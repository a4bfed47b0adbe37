package service

import (
	"context"
	"encoding/json"
	"time"

	"commerce-agent-be/internal/config"
	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/entity"
	"commerce-agent-be/internal/pkg/logger"
	"commerce-agent-be/internal/repository/contract"
	"commerce-agent-be/pkg/embedding"
	"commerce-agent-be/pkg/rag"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	Add(ctx context.Context, req *dto.AddKnowledgeRequest) (*dto.AddKnowledgeResponse, error)
	Search(ctx context.Context, req *dto.SearchKnowledgeRequest) (*dto.SearchKnowledgeResponse, error)
	Items(ctx context.Context, category, language string, limit, offset int) ([]*dto.KnowledgeItemResponse, error)
	Info(ctx context.Context) (*dto.KnowledgeInfoResponse, error)
	Delete(ctx context.Context, itemId uuid.UUID) error

	// Query makes the knowledge base usable as a retrieval collaborator.
	Query(ctx context.Context, text string, topK int, filters rag.Filters) ([]rag.Result, error)
}

type knowledgeService struct {
	repo              contract.KnowledgeRepository
	publisherService  IPublisherService
	embeddingProvider embedding.EmbeddingProvider
	cfg               *config.Config
	logger            logger.ILogger
}

func NewKnowledgeService(
	repo contract.KnowledgeRepository,
	publisherService IPublisherService,
	embeddingProvider embedding.EmbeddingProvider,
	cfg *config.Config,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		repo:              repo,
		publisherService:  publisherService,
		embeddingProvider: embeddingProvider,
		cfg:               cfg,
		logger:            log,
	}
}

func (s *knowledgeService) Add(ctx context.Context, req *dto.AddKnowledgeRequest) (*dto.AddKnowledgeResponse, error) {
	item := entity.KnowledgeItem{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Language:  req.Language,
		Source:    req.Source,
		CreatedAt: time.Now(),
	}
	if item.Source == "" {
		item.Source = req.Title
	}

	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.IngestKnowledgeMessage{
		KnowledgeItemId: item.Id,
		Title:           item.Title,
		Content:         item.Content,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	s.logger.Info("KnowledgeService", "Knowledge item queued for embedding", map[string]interface{}{
		"item_id": item.Id.String(),
		"title":   item.Title,
	})

	return &dto.AddKnowledgeResponse{Id: item.Id}, nil
}

func (s *knowledgeService) Search(ctx context.Context, req *dto.SearchKnowledgeRequest) (*dto.SearchKnowledgeResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = s.cfg.Rag.TopKRetrieval
	}

	results, err := s.Query(ctx, req.Query, topK, rag.Filters{
		Category: req.Category,
		Language: req.Language,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.SearchResultDTO, len(results))
	for i, r := range results {
		category, _ := r.Metadata["category"].(string)
		out[i] = dto.SearchResultDTO{
			Content:  r.Content,
			Score:    r.Score,
			Source:   r.Source,
			Category: category,
		}
	}

	return &dto.SearchKnowledgeResponse{
		Query:   req.Query,
		Results: out,
		Count:   len(out),
	}, nil
}

func (s *knowledgeService) Items(ctx context.Context, category, language string, limit, offset int) ([]*dto.KnowledgeItemResponse, error) {
	items, err := s.repo.FindItems(ctx, category, language, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.KnowledgeItemResponse, len(items))
	for i, item := range items {
		out[i] = &dto.KnowledgeItemResponse{
			Id:        item.Id,
			Title:     item.Title,
			Content:   item.Content,
			Category:  item.Category,
			Language:  item.Language,
			Source:    item.Source,
			CreatedAt: item.CreatedAt,
		}
	}
	return out, nil
}

func (s *knowledgeService) Info(ctx context.Context) (*dto.KnowledgeInfoResponse, error) {
	itemCount, err := s.repo.CountItems(ctx)
	if err != nil {
		return nil, err
	}
	chunkCount, err := s.repo.CountChunks(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.KnowledgeInfoResponse{
		ItemCount:  itemCount,
		ChunkCount: chunkCount,
	}, nil
}

func (s *knowledgeService) Delete(ctx context.Context, itemId uuid.UUID) error {
	return s.repo.DeleteByItemId(ctx, itemId)
}

func (s *knowledgeService) Query(ctx context.Context, text string, topK int, filters rag.Filters) ([]rag.Result, error) {
	res, err := s.embeddingProvider.Generate(ctx, text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	scored, err := s.repo.SearchSimilar(ctx, res.Embedding.Values, topK, contract.SearchFilter{
		Category: filters.Category,
		Language: filters.Language,
	})
	if err != nil {
		return nil, err
	}

	results := make([]rag.Result, len(scored))
	for i, sc := range scored {
		results[i] = rag.Result{
			Content: sc.Chunk.Content,
			Score:   sc.Similarity,
			Source:  sc.Item.Source,
			Metadata: map[string]interface{}{
				"category": sc.Item.Category,
				"language": sc.Item.Language,
				"title":    sc.Item.Title,
			},
		}
	}
	return results, nil
}
