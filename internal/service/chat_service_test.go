package service

import (
	"context"
	"errors"
	"testing"

	"cryzo-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		message string
		intent  string
	}{
		{"Can you export this to excel?", IntentExport},
		{"download the inventory please", IntentExport},
		{"send me your price list", IntentPriceList},
		{"do you have a pricelist", IntentPriceList},
		{"what iphones do you have?", IntentGeneral},
		{"", IntentGeneral},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.intent, classifyIntent(tc.message), tc.message)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	svc := NewChatService(&stubCatalog{}, &stubParser{})

	_, err := svc.Chat(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestChatHappyPath(t *testing.T) {
	catalog := &stubCatalog{products: []models.Product{
		{Brand: "Apple", Model: "iPhone 15", Storage: "256GB", Grade: "Brand New", RetailPrice: 1100, InStock: true},
	}}
	assistant := &stubParser{answer: "We have the iPhone 15 256GB in stock at $1100."}

	svc := NewChatService(catalog, assistant)

	resp, err := svc.Chat(context.Background(), "what iphones do you have?")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, IntentGeneral, resp.Intent)
	assert.Equal(t, assistant.answer, resp.Response)
	// The assistant sees the flattened inventory.
	assert.Contains(t, assistant.inventory, "Apple iPhone 15 256GB Brand New - $1100 (1 units)")
}

func TestChatAssistantFailureDegrades(t *testing.T) {
	assistant := &stubParser{answerErr: errors.New("model overloaded")}

	svc := NewChatService(&stubCatalog{}, assistant)

	resp, err := svc.Chat(context.Background(), "export my price list")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, IntentExport, resp.Intent)
	assert.Equal(t, chatUnavailableReply, resp.Response)
}
