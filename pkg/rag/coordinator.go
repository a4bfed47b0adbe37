package rag

import (
	"context"
	"strings"

	"commerce-agent-be/internal/pkg/logger"
)

const (
	contentPrefix = "内容: "
	sourcePrefix  = "来源: "
)

// Coordinator shapes raw retrieval results into generation context.
// Retrieval is best-effort enrichment: collaborator failures degrade to
// an empty context instead of propagating.
type Coordinator struct {
	retriever Retriever
	logger    logger.ILogger
}

func NewCoordinator(retriever Retriever, log logger.ILogger) *Coordinator {
	return &Coordinator{
		retriever: retriever,
		logger:    log,
	}
}

// Search runs a filtered retrieval query and returns the ranked hits.
func (c *Coordinator) Search(ctx context.Context, query string, topK int, filters Filters) ([]Result, error) {
	results, err := c.retriever.Query(ctx, query, topK, filters)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// RelevantContext assembles the retrieval context for a query: each hit
// rendered as a content/source block, blocks joined by a blank line.
// Source identifiers stay recoverable via ExtractSources.
func (c *Coordinator) RelevantContext(ctx context.Context, query string, topK int, filters Filters) (string, []string) {
	results, err := c.retriever.Query(ctx, query, topK, filters)
	if err != nil {
		c.logger.Warn("RetrievalCoordinator", "Retrieval failed, continuing without context", map[string]interface{}{
			"error": err.Error(),
			"query": query,
		})
		return "", []string{}
	}
	if len(results) == 0 {
		return "", []string{}
	}

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, contentPrefix+r.Content+"\n"+sourcePrefix+r.Source)
	}
	contextText := strings.Join(blocks, "\n\n")

	return contextText, ExtractSources(contextText)
}

// ExtractSources recovers source identifiers from an assembled context
// by scanning for source-marker lines.
func ExtractSources(contextText string) []string {
	sources := []string{}
	if contextText == "" {
		return sources
	}
	for _, line := range strings.Split(contextText, "\n") {
		if strings.HasPrefix(line, sourcePrefix) {
			source := strings.TrimSpace(strings.TrimPrefix(line, sourcePrefix))
			if source != "" {
				sources = append(sources, source)
			}
		}
	}
	return sources
}
