package service

import (
	"context"
	"time"

	"commerce-agent-be/internal/config"
	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/pkg/logger"
	"commerce-agent-be/pkg/language"
	"commerce-agent-be/pkg/llm"
	"commerce-agent-be/pkg/memory"
	"commerce-agent-be/pkg/rag"
	"commerce-agent-be/pkg/rag/intent"
	"commerce-agent-be/pkg/rag/prompt"

	"github.com/google/uuid"
)

// Canned degraded replies, returned when a turn cannot be completed.
const (
	apologyZh = "抱歉，我现在无法回答您的问题，请稍后再试。"
	apologyEn = "Sorry, I am unable to answer your question right now. Please try again later."
)

// historyTurns is how many recent messages are rendered into the prompt.
const historyTurns = 5

type IAgentService interface {
	// ProcessChat runs one conversational turn. It never fails: any
	// internal fault degrades to an apology response with zero
	// confidence. The caller appends the user's own message before
	// invoking this, so history stays user-then-assistant.
	ProcessChat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse
}

type agentService struct {
	store       *memory.Store
	detector    *language.Detector
	classifier  *intent.Classifier
	coordinator *rag.Coordinator
	llmProvider llm.LLMProvider
	cfg         *config.Config
	logger      logger.ILogger
}

func NewAgentService(
	store *memory.Store,
	detector *language.Detector,
	classifier *intent.Classifier,
	coordinator *rag.Coordinator,
	llmProvider llm.LLMProvider,
	cfg *config.Config,
	log logger.ILogger,
) IAgentService {
	return &agentService{
		store:       store,
		detector:    detector,
		classifier:  classifier,
		coordinator: coordinator,
		llmProvider: llmProvider,
		cfg:         cfg,
		logger:      log,
	}
}

func (s *agentService) ProcessChat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	lang := req.Language
	if lang == "" {
		lang = s.detector.Detect(req.Message)
	}

	response, sources, err := s.runTurn(ctx, sessionID, req.UserID, req.Message, lang)
	if err != nil {
		s.logger.Error("AgentService", "Chat turn failed, returning degraded response", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return &dto.ChatResponse{
			Response:   s.apology(lang),
			Language:   lang,
			Confidence: 0.0,
			Sources:    []string{},
			SessionID:  sessionID,
			Timestamp:  time.Now(),
		}
	}

	return &dto.ChatResponse{
		Response:   response,
		Language:   lang,
		Confidence: 0.9,
		Sources:    sources,
		SessionID:  sessionID,
		Timestamp:  time.Now(),
	}
}

func (s *agentService) runTurn(ctx context.Context, sessionID, userID, message, lang string) (string, []string, error) {
	turnCtx, cancel := context.WithTimeout(ctx, s.cfg.Ai.RequestTimeout)
	defer cancel()

	userIntent := s.classifier.Classify(turnCtx, message)

	var contextText string
	sources := []string{}
	if userIntent == intent.IntentBusiness {
		contextText, sources = s.coordinator.RelevantContext(turnCtx, message, s.cfg.Rag.TopKRetrieval, rag.Filters{})
	} else {
		// small talk needs no grounding, retrieval is skipped entirely
		contextText = prompt.SmallTalkContext
	}

	historyText := s.store.ContextText(sessionID, historyTurns)
	rendered := prompt.NewContextualBuilder(message, contextText, historyText, lang).Build()

	answer, err := s.llmProvider.Chat(turnCtx, []llm.Message{
		{Role: "system", Content: prompt.SystemPrompt},
		{Role: "user", Content: rendered},
	},
		llm.WithTemperature(s.cfg.Ai.Temperature),
		llm.WithMaxTokens(s.cfg.Ai.MaxTokens),
	)
	if err != nil {
		return "", nil, err
	}

	if err := s.store.AppendMessage(sessionID, userID, memory.RoleAssistant, answer, lang); err != nil {
		return "", nil, err
	}

	s.logger.Info("AgentService", "Chat turn completed", map[string]interface{}{
		"session_id": sessionID,
		"intent":     userIntent,
		"language":   lang,
		"sources":    len(sources),
	})

	return answer, sources, nil
}

func (s *agentService) apology(lang string) string {
	if lang == language.English {
		return apologyEn
	}
	return apologyZh
}
