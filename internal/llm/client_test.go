package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"brand":"Apple"}`, `{"brand":"Apple"}`},
		{"json fence", "```json\n{\"brand\":\"Apple\"}\n```", `{"brand":"Apple"}`},
		{"bare fence", "```\n{\"brand\":\"Apple\"}\n```", `{"brand":"Apple"}`},
		{"whitespace", "  {\"brand\":\"Apple\"}  ", `{"brand":"Apple"}`},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripCodeFence(tc.input))
		})
	}
}

func TestGeminiSelectModel(t *testing.T) {
	c := NewGeminiClient("key", "flash", "pro", time.Minute)

	assert.Equal(t, "flash", c.selectModel("iphone 14"))
	assert.Equal(t, "pro", c.selectModel("compare iphones"))
	assert.Equal(t, "pro", c.selectModel("best value"))
	assert.Equal(t, "pro", c.selectModel("recommend something"))
	assert.Equal(t, "pro", c.selectModel("cheap iphone 14 pro max japan origin"))
}

func geminiStub(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": reply}}}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestGeminiParseQuery(t *testing.T) {
	srv := geminiStub(t, "```json\n{\"brand\":\"Apple\",\"model\":\"iPhone 14\",\"priceMax\":250}\n```")
	defer srv.Close()

	c := NewGeminiClient("key", "flash", "pro", time.Minute)
	c.endpoint = srv.URL

	filters, model, err := c.ParseQuery(context.Background(), "iphone 14")
	require.NoError(t, err)
	assert.Equal(t, "flash", model)
	assert.Equal(t, "Apple", filters.Brand)
	assert.Equal(t, "iPhone 14", filters.Model)
	require.NotNil(t, filters.PriceMax)
	assert.Equal(t, 250.0, *filters.PriceMax)
}

func TestGeminiParseQueryInvalidJSON(t *testing.T) {
	srv := geminiStub(t, "We don't have that product in stock")
	defer srv.Close()

	c := NewGeminiClient("key", "flash", "pro", time.Minute)
	c.endpoint = srv.URL

	_, _, err := c.ParseQuery(context.Background(), "iphone 14")
	assert.Error(t, err)
}

func TestClaudeParseCSV(t *testing.T) {
	reply := "```json\n[{\"brand\":\"Apple\",\"model\":\"iPhone 14\",\"storage\":\"128GB\",\"grade\":\"Refurb A\",\"phoneOrigin\":\"US\",\"retailPrice\":300,\"units\":5,\"sku\":\"IP14-128-A-US\"}]\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, claudeAPIVersion, r.Header.Get("anthropic-version"))

		resp := map[string]any{
			"content": []map[string]string{{"type": "text", "text": reply}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := NewClaudeClient("key", "claude-sonnet-4-20250514", time.Minute)
	c.endpoint = srv.URL

	records, err := c.ParseCSV(context.Background(), "brand,model\nApple,iPhone 14")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Apple", records[0].Brand)
	assert.Equal(t, 300.0, records[0].WholesalePrice)
	assert.Equal(t, 5, records[0].Units)
	assert.Equal(t, "IP14-128-A-US", records[0].SKU)
}

func TestClaudeErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		resp := map[string]any{
			"error": map[string]string{"type": "invalid_request_error", "message": "max_tokens required"},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := NewClaudeClient("key", "claude-sonnet-4-20250514", time.Minute)
	c.endpoint = srv.URL

	_, err := c.Answer(context.Background(), "hello", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens required")
}
