package service

import (
	"math"

	"cryzo-api/internal/models"
)

// Regional resale multipliers. Unknown regions fall back to the
// conservative default.
var profitMultipliers = map[string]float64{
	"Nigeria":      1.40,
	"Dubai":        1.35,
	"Kenya":        1.38,
	"Pakistan":     1.42,
	"Ghana":        1.39,
	"South Africa": 1.33,
}

const defaultProfitMultiplier = 1.30

// AnalyzeProfit estimates resale price, per-unit profit and margin for a
// resale region.
func AnalyzeProfit(region string, retailPrice float64) models.ProfitAnalysis {
	multiplier, ok := profitMultipliers[region]
	if !ok {
		multiplier = defaultProfitMultiplier
	}

	resale := math.Round(retailPrice * multiplier)
	profit := resale - retailPrice

	margin := 0.0
	if retailPrice > 0 {
		margin = math.Round(profit/retailPrice*1000) / 10
	}

	return models.ProfitAnalysis{
		Region:        region,
		YourCost:      retailPrice,
		ResalePrice:   resale,
		ProfitPerUnit: profit,
		MarginPercent: margin,
	}
}
