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

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient talks to the Google Generative Language REST API.
type GeminiClient struct {
	apiKey     string
	flashModel string
	proModel   string
	endpoint   string
	httpClient *http.Client
}

var _ Client = (*GeminiClient)(nil)

func NewGeminiClient(apiKey, flashModel, proModel string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		flashModel: flashModel,
		proModel:   proModel,
		endpoint:   defaultGeminiEndpoint,
		httpClient: newHTTPClient(timeout),
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// selectModel routes comparative or long queries to the larger model.
func (c *GeminiClient) selectModel(query string) string {
	lower := strings.ToLower(query)
	if strings.Contains(lower, "compare") || strings.Contains(lower, "best") ||
		strings.Contains(lower, "recommend") || len(strings.Fields(query)) > 5 {
		return c.proModel
	}
	return c.flashModel
}

func (c *GeminiClient) ParseQuery(ctx context.Context, query string) (models.SearchFilters, string, error) {
	model := c.selectModel(query)

	text, err := c.generate(ctx, model, queryParsePrompt(query), "parse_query")
	if err != nil {
		return models.SearchFilters{}, model, err
	}

	var filters models.SearchFilters
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &filters); err != nil {
		util.LLMRequestsFailed.WithLabelValues("gemini", "parse").Inc()
		return models.SearchFilters{}, model, fmt.Errorf("failed to parse gemini filter response: %w", err)
	}
	return filters, model, nil
}

func (c *GeminiClient) ParseCSV(ctx context.Context, csvText string) ([]models.RawRecord, error) {
	text, err := c.generate(ctx, c.flashModel, csvParsePrompt(csvText), "parse_csv")
	if err != nil {
		return nil, err
	}

	var records []models.RawRecord
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &records); err != nil {
		util.LLMRequestsFailed.WithLabelValues("gemini", "parse").Inc()
		return nil, fmt.Errorf("failed to parse gemini csv response: %w", err)
	}
	return records, nil
}

func (c *GeminiClient) Answer(ctx context.Context, message, inventory string) (string, error) {
	return c.generate(ctx, c.selectModel(message), chatPrompt(message, inventory), "chat")
}

func (c *GeminiClient) generate(ctx context.Context, model, prompt, operation string) (string, error) {
	start := time.Now()
	defer func() {
		util.LLMRequestDuration.WithLabelValues("gemini", operation).Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		util.LLMRequestsFailed.WithLabelValues("gemini", "network").Inc()
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed reading gemini response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		util.LLMRequestsFailed.WithLabelValues("gemini", "decode").Inc()
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		util.LLMRequestsFailed.WithLabelValues("gemini", "status").Inc()
		if parsed.Error != nil {
			return "", fmt.Errorf("gemini error (%d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("gemini error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var builder strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text content")
	}
	return text, nil
}
