package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cryzo-api/internal/models"
	"cryzo-api/internal/util"
)

const (
	defaultClaudeEndpoint = "https://api.anthropic.com/v1/messages"
	claudeAPIVersion      = "2023-06-01"
)

// ClaudeClient talks to the Anthropic Messages API.
type ClaudeClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

var _ Client = (*ClaudeClient)(nil)

func NewClaudeClient(apiKey, model string, timeout time.Duration) *ClaudeClient {
	return &ClaudeClient{
		apiKey:     apiKey,
		model:      model,
		endpoint:   defaultClaudeEndpoint,
		httpClient: newHTTPClient(timeout),
	}
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *ClaudeClient) ParseQuery(ctx context.Context, query string) (models.SearchFilters, string, error) {
	text, err := c.complete(ctx, queryParsePrompt(query), 1024, "parse_query")
	if err != nil {
		return models.SearchFilters{}, c.model, err
	}

	var filters models.SearchFilters
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &filters); err != nil {
		util.LLMRequestsFailed.WithLabelValues("claude", "parse").Inc()
		return models.SearchFilters{}, c.model, fmt.Errorf("failed to parse claude filter response: %w", err)
	}
	return filters, c.model, nil
}

func (c *ClaudeClient) ParseCSV(ctx context.Context, csvText string) ([]models.RawRecord, error) {
	text, err := c.complete(ctx, csvParsePrompt(csvText), 4096, "parse_csv")
	if err != nil {
		return nil, err
	}

	var records []models.RawRecord
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &records); err != nil {
		util.LLMRequestsFailed.WithLabelValues("claude", "parse").Inc()
		return nil, fmt.Errorf("failed to parse claude csv response: %w", err)
	}
	return records, nil
}

func (c *ClaudeClient) Answer(ctx context.Context, message, inventory string) (string, error) {
	return c.complete(ctx, chatPrompt(message, inventory), 2048, "chat")
}

func (c *ClaudeClient) complete(ctx context.Context, prompt string, maxTokens int, operation string) (string, error) {
	start := time.Now()
	defer func() {
		util.LLMRequestDuration.WithLabelValues("claude", operation).Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal claude request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build claude request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		util.LLMRequestsFailed.WithLabelValues("claude", "network").Inc()
		return "", fmt.Errorf("claude request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed reading claude response: %w", err)
	}

	var parsed claudeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		util.LLMRequestsFailed.WithLabelValues("claude", "decode").Inc()
		return "", fmt.Errorf("failed to decode claude response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		util.LLMRequestsFailed.WithLabelValues("claude", "status").Inc()
		if parsed.Error != nil {
			return "", fmt.Errorf("claude error (%d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("claude error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var builder strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", fmt.Errorf("claude returned empty text content")
	}
	return text, nil
}
