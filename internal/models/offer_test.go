package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenProductWithVariations(t *testing.T) {
	product := Product{
		Name:     "iPhone 15",
		Brand:    "Apple",
		Model:    "iPhone 15",
		Category: CategoryPhone,
		Variations: []Variation{
			{Storage: "128GB", Grade: "Brand New", Origin: "US", RetailPrice: 999, Stock: 4},
			{Storage: "256GB", Grade: "Refurb A", Origin: "HK", RetailPrice: 899, Stock: 7},
		},
	}

	offers := FlattenProduct(product)
	require.Len(t, offers, 2)

	assert.Equal(t, "128GB", offers[0].Storage)
	assert.Equal(t, float64(999), offers[0].Price)
	assert.Equal(t, 4, offers[0].Stock)
	assert.Equal(t, "Apple", offers[1].Brand)
	assert.Equal(t, "HK", offers[1].Origin)
}

func TestFlattenProductWithoutVariations(t *testing.T) {
	product := Product{
		Name:        "Galaxy S24",
		Brand:       "Samsung",
		Model:       "Galaxy S24",
		Storage:     "256GB",
		Grade:       "Brand New",
		RetailPrice: 850,
		InStock:     true,
	}

	offers := FlattenProduct(product)
	require.Len(t, offers, 1)

	assert.Equal(t, "256GB", offers[0].Storage)
	assert.Equal(t, float64(850), offers[0].Price)
	assert.Equal(t, 1, offers[0].Stock)
}

func TestOfferSummary(t *testing.T) {
	offer := Offer{Brand: "Apple", Model: "iPhone 15", Storage: "256GB", Grade: "Brand New", Price: 1099.5, Stock: 12}
	assert.Equal(t, "Apple iPhone 15 256GB Brand New - $1100 (12 units)", offer.Summary())
}

func TestApplyMarkup(t *testing.T) {
	assert.Equal(t, float64(110), ApplyMarkup(100))
	assert.Equal(t, float64(308), ApplyMarkup(280))
	assert.Equal(t, float64(220), ApplyMarkup(199.99))
}
