package pricing

import (
	"testing"

	"cryzo-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(brand, model, storage, grade, origin, source string, price float64, units int) models.RawRecord {
	return models.RawRecord{
		Brand:          brand,
		Model:          model,
		Storage:        storage,
		Grade:          grade,
		Origin:         origin,
		Source:         source,
		WholesalePrice: price,
		Units:          units,
	}
}

func TestKeyIsCaseInsensitive(t *testing.T) {
	a := record("Apple", "iPhone 14", "128GB", "Refurb A", "US", "a.csv", 300, 5)
	b := record("apple", "IPHONE 14", "128gb", "refurb a", "us", "b.csv", 280, 9)

	assert.Equal(t, Key(a), Key(b))
}

func TestConsolidateKeepsLowestPriceAndSumsStock(t *testing.T) {
	records := []models.RawRecord{
		record("Apple", "iPhone 14", "128GB", "Refurb A", "US", "alpha.csv", 300, 5),
		record("Apple", "iPhone 14", "128GB", "Refurb A", "US", "beta.csv", 280, 9),
	}

	result := Consolidate(records)
	require.Len(t, result, 1)

	winner := result[Key(records[0])]
	assert.Equal(t, 280.0, winner.WholesalePrice)
	assert.Equal(t, 14, winner.Units)
	assert.Equal(t, "beta.csv", winner.Source)
}

func TestConsolidateTieKeepsFirstSeenSource(t *testing.T) {
	records := []models.RawRecord{
		record("Apple", "iPhone 14", "128GB", "Refurb A", "US", "alpha.csv", 300, 5),
		record("Apple", "iPhone 14", "128GB", "Refurb A", "US", "beta.csv", 300, 3),
	}

	result := Consolidate(records)
	require.Len(t, result, 1)

	winner := result[Key(records[0])]
	assert.Equal(t, 300.0, winner.WholesalePrice)
	assert.Equal(t, "alpha.csv", winner.Source)
	assert.Equal(t, 8, winner.Units)
}

func TestConsolidatePriceAndStockAreOrderIndependent(t *testing.T) {
	forward := []models.RawRecord{
		record("Samsung", "Galaxy S23", "256GB", "Refurb B", "HK", "a.csv", 410, 2),
		record("Samsung", "Galaxy S23", "256GB", "Refurb B", "HK", "b.csv", 395, 7),
		record("Samsung", "Galaxy S23", "256GB", "Refurb B", "HK", "c.csv", 430, 1),
	}
	reversed := []models.RawRecord{forward[2], forward[1], forward[0]}

	a := Consolidate(forward)[Key(forward[0])]
	b := Consolidate(reversed)[Key(forward[0])]

	assert.Equal(t, a.WholesalePrice, b.WholesalePrice)
	assert.Equal(t, a.Units, b.Units)
	assert.Equal(t, "b.csv", a.Source)
	assert.Equal(t, "b.csv", b.Source)
}

func TestConsolidateDistinctKeysStaySeparate(t *testing.T) {
	records := []models.RawRecord{
		record("Apple", "iPhone 14", "128GB", "Refurb A", "US", "a.csv", 300, 5),
		record("Apple", "iPhone 14", "256GB", "Refurb A", "US", "a.csv", 340, 5),
		record("Apple", "iPhone 14", "128GB", "Refurb A", "JP", "a.csv", 290, 2),
	}

	result := Consolidate(records)
	assert.Len(t, result, 3)
}

func TestConsolidateEmptyInput(t *testing.T) {
	assert.Empty(t, Consolidate(nil))
	assert.Empty(t, Consolidate([]models.RawRecord{}))
}

func TestConsolidatePropagatesCallerDefaults(t *testing.T) {
	// A record with zero price or stock is taken verbatim; the engine does
	// not fill in anything on the caller's behalf.
	records := []models.RawRecord{
		record("Apple", "iPhone 13", "128GB", "Refurb C", "EU", "a.csv", 0, 0),
		record("Apple", "iPhone 13", "128GB", "Refurb C", "EU", "b.csv", 250, 4),
	}

	winner := Consolidate(records)[Key(records[0])]
	assert.Equal(t, 0.0, winner.WholesalePrice)
	assert.Equal(t, "a.csv", winner.Source)
	assert.Equal(t, 4, winner.Units)
}

func TestValuesPreservesFirstSeenOrder(t *testing.T) {
	records := []models.RawRecord{
		record("Apple", "iPhone 14", "128GB", "Refurb A", "US", "a.csv", 300, 5),
		record("Samsung", "Galaxy S23", "256GB", "Refurb B", "HK", "a.csv", 410, 2),
		record("Apple", "iPhone 14", "128GB", "Refurb A", "US", "b.csv", 280, 9),
	}

	out := Values(records, Consolidate(records))
	require.Len(t, out, 2)
	assert.Equal(t, "iPhone 14", out[0].Model)
	assert.Equal(t, "Galaxy S23", out[1].Model)
	assert.Equal(t, 280.0, out[0].WholesalePrice)
}
