package service

import (
	"context"
	"strings"

	"cryzo-api/internal/llm"
	"cryzo-api/internal/models"
	"cryzo-api/internal/store"
	"cryzo-api/internal/util"

	"go.uber.org/zap"
)

// Chat intents
const (
	IntentPriceList = "price_list"
	IntentExport    = "export"
	IntentGeneral   = "general"
)

const chatUnavailableReply = "Our assistant is temporarily unavailable. " +
	"Please browse the catalog directly or reach out via the contact page."

// ChatService answers free-form inventory questions with an external
// language model over a flattened inventory summary.
type ChatService struct {
	catalog   Catalog
	assistant llm.Client
	logger    *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(catalog Catalog, assistant llm.Client) *ChatService {
	return &ChatService{
		catalog:   catalog,
		assistant: assistant,
		logger:    util.GetLogger(),
	}
}

// ChatResponse is the wire shape of an assistant reply.
type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Intent   string `json:"intent"`
}

// Chat answers one message. Assistant failures degrade to a canned reply,
// never an error.
func (s *ChatService) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	ctx, span := util.StartSpan(ctx, "ChatService.Chat")
	defer span.End()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyQuery
	}

	intent := classifyIntent(message)

	inventory, err := s.inventorySummary(ctx)
	if err != nil {
		s.logger.Error("Failed to build inventory summary", zap.Error(err))
		inventory = ""
	}

	answer, err := s.assistant.Answer(ctx, message, inventory)
	if err != nil {
		s.logger.Warn("Assistant unavailable", zap.Error(err))
		util.ChatRequestsTotal.WithLabelValues("degraded").Inc()
		return &ChatResponse{
			Success:  true,
			Response: chatUnavailableReply,
			Intent:   intent,
		}, nil
	}

	util.ChatRequestsTotal.WithLabelValues("ok").Inc()
	return &ChatResponse{
		Success:  true,
		Response: answer,
		Intent:   intent,
	}, nil
}

func (s *ChatService) inventorySummary(ctx context.Context) (string, error) {
	products, err := s.catalog.SearchProducts(ctx, store.ProductFilter{}, chatInventoryLimit)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, p := range products {
		for _, offer := range models.FlattenProduct(p) {
			lines = append(lines, offer.Summary())
		}
	}
	return strings.Join(lines, "\n"), nil
}

func classifyIntent(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "export") || strings.Contains(lower, "excel") || strings.Contains(lower, "download"):
		return IntentExport
	case strings.Contains(lower, "price list") || strings.Contains(lower, "pricelist"):
		return IntentPriceList
	default:
		return IntentGeneral
	}
}
