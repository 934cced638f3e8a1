// Package llm wraps the hosted language-model providers behind narrow
// interfaces so the concrete provider is swappable and mockable.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cryzo-api/config"
	"cryzo-api/internal/models"

	"github.com/hashicorp/go-retryablehttp"
)

// Client is the provider surface the façades depend on.
type Client interface {
	// ParseQuery extracts structured filters from free text. It also
	// reports which model served the request.
	ParseQuery(ctx context.Context, query string) (models.SearchFilters, string, error)

	// ParseCSV extracts supplier records from raw CSV content.
	ParseCSV(ctx context.Context, csvText string) ([]models.RawRecord, error)

	// Answer responds to a chat message given an inventory summary.
	Answer(ctx context.Context, message, inventory string) (string, error)
}

// New builds the provider named by config.
func New(cfg *config.Config) (Client, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		if cfg.LLM.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		return NewGeminiClient(cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel, cfg.LLM.GeminiPro, cfg.LLM.Timeout), nil
	case "claude":
		if cfg.LLM.ClaudeAPIKey == "" {
			return nil, fmt.Errorf("CLAUDE_API_KEY is not set")
		}
		return NewClaudeClient(cfg.LLM.ClaudeAPIKey, cfg.LLM.ClaudeModel, cfg.LLM.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

// newHTTPClient builds the retrying HTTP client for provider calls. The
// timeout bounds the whole request including retries.
func newHTTPClient(timeout time.Duration) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 3 * time.Second
	rc.Logger = nil

	client := rc.StandardClient()
	client.Timeout = timeout
	return client
}

// stripCodeFence removes a markdown code fence wrapping model output.
// Providers frequently fence JSON even when told not to, so this runs
// before every parse.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
