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

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	repo              contract.KnowledgeRepository
	embeddingProvider embedding.EmbeddingProvider
	cfg               *config.Config
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	repo contract.KnowledgeRepository,
	embeddingProvider embedding.EmbeddingProvider,
	cfg *config.Config,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		repo:              repo,
		embeddingProvider: embeddingProvider,
		cfg:               cfg,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestKnowledgeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal ingest message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payload, retrying cannot help
		return
	}

	cs.logger.Info("ConsumerService", "Processing knowledge item embedding", map[string]interface{}{
		"item_id": payload.KnowledgeItemId.String(),
	})

	chunks := rag.SplitText(payload.Content, cs.cfg.Rag.ChunkSize, cs.cfg.Rag.ChunkOverlap)

	newChunks := make([]*entity.KnowledgeChunk, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(ctx, chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.logger.Error("ConsumerService", "Failed to generate chunk embedding", map[string]interface{}{
				"item_id":     payload.KnowledgeItemId.String(),
				"chunk_index": i,
				"error":       err.Error(),
			})
			msg.Nack()
			return
		}

		newChunks = append(newChunks, &entity.KnowledgeChunk{
			Id:              uuid.New(),
			Content:         chunk,
			EmbeddingValue:  res.Embedding.Values,
			KnowledgeItemId: payload.KnowledgeItemId,
			ChunkIndex:      i,
			CreatedAt:       time.Now(),
		})
	}

	if err := cs.repo.CreateChunks(ctx, newChunks); err != nil {
		cs.logger.Error("ConsumerService", "Failed to store chunks", map[string]interface{}{
			"item_id": payload.KnowledgeItemId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("ConsumerService", "Knowledge item embedded", map[string]interface{}{
		"item_id": payload.KnowledgeItemId.String(),
		"chunks":  len(newChunks),
	})
	msg.Ack()
}
