package service

import (
	"context"
	"testing"

	"cryzo-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{2, 50, 2, 50},
		{1, 500, 1, 100},
	}

	for _, tc := range cases {
		page, limit := NormalizePage(tc.page, tc.limit)
		assert.Equal(t, tc.wantPage, page)
		assert.Equal(t, tc.wantLimit, limit)
	}
}

func TestPaginate(t *testing.T) {
	p := paginate(2, 20, 101)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, int64(101), p.Total)
	assert.Equal(t, 6, p.Pages)

	empty := paginate(1, 20, 0)
	assert.Equal(t, 0, empty.Pages)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(nil)

	err := svc.Create(context.Background(), &models.Product{Model: "iPhone 15", Category: models.CategoryPhone})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(context.Background(), &models.Product{Name: "iPhone 15", Model: "iPhone 15", Category: "Laptop"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAnalyzeProfit(t *testing.T) {
	a := AnalyzeProfit("Nigeria", 1000)
	assert.Equal(t, float64(1400), a.ResalePrice)
	assert.Equal(t, float64(400), a.ProfitPerUnit)
	assert.Equal(t, 40.0, a.MarginPercent)

	// Unknown regions use the default multiplier.
	b := AnalyzeProfit("Atlantis", 1000)
	assert.Equal(t, float64(1300), b.ResalePrice)

	zero := AnalyzeProfit("Kenya", 0)
	assert.Equal(t, 0.0, zero.MarginPercent)
}
