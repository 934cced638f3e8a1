// Package pricing merges supplier price lists into one best offer per
// unique device configuration.
package pricing

import (
	"fmt"
	"strings"

	"cryzo-api/internal/models"
)

// Key builds the consolidation key for a record: brand, model, storage,
// grade and origin joined and lower-cased. Keys are transient; they are
// never persisted.
func Key(r models.RawRecord) string {
	return strings.ToLower(fmt.Sprintf("%s-%s-%s-%s-%s", r.Brand, r.Model, r.Storage, r.Grade, r.Origin))
}

// Consolidate reduces supplier records to one winner per key. The first
// record seen for a key is stored as-is. Later records with a strictly
// lower wholesale price replace the stored price and source attribution;
// ties keep the first-seen price and source. Stock is always summed across
// every record of a key, regardless of which price wins.
//
// Records are taken verbatim: a zero price or stock passed in stays a zero.
// The function has no side effects; persistence is the caller's job.
func Consolidate(records []models.RawRecord) map[string]models.RawRecord {
	consolidated := make(map[string]models.RawRecord, len(records))

	for _, r := range records {
		key := Key(r)
		existing, ok := consolidated[key]
		if !ok {
			consolidated[key] = r
			continue
		}

		if r.WholesalePrice < existing.WholesalePrice {
			existing.WholesalePrice = r.WholesalePrice
			existing.Source = r.Source
		}
		existing.Units += r.Units
		consolidated[key] = existing
	}

	return consolidated
}

// Values returns the consolidated records in first-seen key order, so the
// output is stable for a given input sequence.
func Values(records []models.RawRecord, consolidated map[string]models.RawRecord) []models.RawRecord {
	out := make([]models.RawRecord, 0, len(consolidated))
	seen := make(map[string]bool, len(consolidated))
	for _, r := range records {
		key := Key(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, consolidated[key])
	}
	return out
}
