package main

import (
	"context"
	"log"
	"time"

	"commerce-agent-be/internal/config"
	"commerce-agent-be/internal/entity"
	"commerce-agent-be/internal/model"
	"commerce-agent-be/internal/repository/implementation"
	"commerce-agent-be/pkg/database"
	"commerce-agent-be/pkg/embedding"
	"commerce-agent-be/pkg/rag"

	"github.com/google/uuid"
)

type seedItem struct {
	Title    string
	Content  string
	Category string
	Language string
	Source   string
}

// Sample FAQ and product knowledge, mirroring the kind of content the
// support agent is expected to answer about.
var seedItems = []seedItem{
	{
		Title:    "国际物流政策",
		Content:  "我们支持发往全球超过50个国家和地区，包括德国、法国、美国、英国、日本等。标准物流时效为7-15个工作日，快速物流时效为3-7个工作日。满99元免运费，部分偏远地区需加收运费。所有包裹均提供物流跟踪号。",
		Category: "物流问题",
		Language: "zh",
		Source:   "faq-shipping-zh",
	},
	{
		Title:    "退换货政策",
		Content:  "自收到商品之日起30天内，商品未使用且包装完好的情况下可申请无理由退货。质量问题商品支持免费换货，运费由我们承担。退款将在收到退回商品后3-5个工作日内原路返还。定制类商品不支持无理由退货。",
		Category: "售后服务",
		Language: "zh",
		Source:   "faq-returns-zh",
	},
	{
		Title:    "智能手表 X1 产品介绍",
		Content:  "智能手表X1售价899元，支持心率监测、血氧检测、睡眠分析、50米防水和超过100种运动模式。电池续航长达14天，兼容iOS和Android系统。提供黑色、银色、金色三种配色，均支持无线充电。",
		Category: "商品信息",
		Language: "zh",
		Source:   "product-watch-x1-zh",
	},
	{
		Title:    "无线耳机 Pro 产品介绍",
		Content:  "无线耳机Pro售价499元，采用主动降噪技术，单次充电可使用8小时，搭配充电盒总续航32小时。支持蓝牙5.3、IPX5防水等级，适合运动场景使用。支持单耳使用和触控操作。",
		Category: "商品信息",
		Language: "zh",
		Source:   "product-earbuds-pro-zh",
	},
	{
		Title:    "Delivery Time and Shipping",
		Content:  "We ship to more than 50 countries worldwide including Germany, France, the United States, the United Kingdom and Japan. Standard delivery takes 7-15 business days, while express delivery takes 3-7 business days. Free shipping on orders over $15. A tracking number is provided for every parcel.",
		Category: "物流问题",
		Language: "en",
		Source:   "faq-shipping-en",
	},
	{
		Title:    "Warranty and Returns",
		Content:  "All products come with a 12-month warranty covering manufacturing defects. Items can be returned within 30 days of delivery if unused and in original packaging. Refunds are issued within 3-5 business days after we receive the returned item. Customized products are not eligible for no-reason returns.",
		Category: "售后服务",
		Language: "en",
		Source:   "faq-warranty-en",
	},
	{
		Title:    "Smart Watch X1 Overview",
		Content:  "The Smart Watch X1 is priced at $129 and features heart rate monitoring, blood oxygen tracking, sleep analysis, 5ATM water resistance and over 100 sport modes. Battery life is up to 14 days. Compatible with both iOS and Android. Available in black, silver and gold, all with wireless charging.",
		Category: "商品信息",
		Language: "en",
		Source:   "product-watch-x1-en",
	},
}

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Preparing knowledge tables...")
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Fatal("Error: Failed to create vector extension:", err)
	}
	if err := db.AutoMigrate(&model.KnowledgeItem{}, &model.KnowledgeChunk{}); err != nil {
		log.Fatal("Error: Failed to migrate knowledge tables:", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.OpenAIBaseURL, cfg.Ai.EmbeddingModel)
	}

	repo := implementation.NewKnowledgeRepository(db)
	ctx := context.Background()

	log.Printf("Seeding %d knowledge items...", len(seedItems))
	for _, s := range seedItems {
		item := entity.KnowledgeItem{
			Id:        uuid.New(),
			Title:     s.Title,
			Content:   s.Content,
			Category:  s.Category,
			Language:  s.Language,
			Source:    s.Source,
			CreatedAt: time.Now(),
		}
		if err := repo.CreateItem(ctx, &item); err != nil {
			log.Fatalf("Error: Failed to create item %q: %v", s.Title, err)
		}

		chunks := rag.SplitText(s.Content, cfg.Rag.ChunkSize, cfg.Rag.ChunkOverlap)
		entities := make([]*entity.KnowledgeChunk, 0, len(chunks))
		for i, chunk := range chunks {
			res, err := embeddingProvider.Generate(ctx, chunk, "RETRIEVAL_DOCUMENT")
			if err != nil {
				log.Fatalf("Error: Failed to embed chunk %d of %q: %v", i, s.Title, err)
			}
			entities = append(entities, &entity.KnowledgeChunk{
				Id:              uuid.New(),
				Content:         chunk,
				EmbeddingValue:  res.Embedding.Values,
				KnowledgeItemId: item.Id,
				ChunkIndex:      i,
				CreatedAt:       time.Now(),
			})
		}
		if err := repo.CreateChunks(ctx, entities); err != nil {
			log.Fatalf("Error: Failed to store chunks for %q: %v", s.Title, err)
		}
		log.Printf("Seeded %q (%d chunks)", s.Title, len(entities))
	}

	itemCount, _ := repo.CountItems(ctx)
	chunkCount, _ := repo.CountChunks(ctx)
	log.Printf("Done. Knowledge base now holds %d items / %d chunks.", itemCount, chunkCount)
}
