package service

import (
	"context"
	"fmt"
	"strings"

	"cryzo-api/internal/broker"
	"cryzo-api/internal/llm"
	"cryzo-api/internal/models"
	"cryzo-api/internal/pricing"
	"cryzo-api/internal/util"

	"go.uber.org/zap"
)

// Inventory is the write surface ingestion needs from the store.
type Inventory interface {
	UpsertProductBySKU(ctx context.Context, product *models.Product) (bool, error)
}

// IngestService runs supplier CSV batches through the language-model
// parser, consolidates them, and upserts the winners. One bad file or one
// bad upsert never aborts the rest of the batch.
type IngestService struct {
	inventory Inventory
	parser    llm.Client
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewIngestService creates a new ingest service
func NewIngestService(inventory Inventory, parser llm.Client, publisher *broker.EventPublisher) *IngestService {
	return &IngestService{
		inventory: inventory,
		parser:    parser,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// UploadedFile is one supplier price list as received.
type UploadedFile struct {
	Name    string
	Content []byte
}

// IngestResult is the wire shape of a completed batch.
type IngestResult struct {
	Success             bool             `json:"success"`
	FilesProcessed      int              `json:"filesProcessed"`
	TotalProductsParsed int              `json:"totalProductsParsed"`
	UniqueProducts      int              `json:"uniqueProducts"`
	DatabaseStats       DatabaseStats    `json:"databaseStats"`
	Logs                []string         `json:"logs"`
	Products            []models.Product `json:"products"`
}

// DatabaseStats counts ingestion writes.
type DatabaseStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// ProcessFiles ingests a batch of supplier CSV files.
func (s *IngestService) ProcessFiles(ctx context.Context, files []UploadedFile) (*IngestResult, error) {
	ctx, span := util.StartSpan(ctx, "IngestService.ProcessFiles")
	defer span.End()

	result := &IngestResult{Success: true, FilesProcessed: len(files)}

	var allRecords []models.RawRecord
	for _, file := range files {
		result.Logs = append(result.Logs, fmt.Sprintf("Reading %s...", file.Name))

		records, err := s.parser.ParseCSV(ctx, string(file.Content))
		if err != nil {
			s.logger.Error("Failed to parse supplier file",
				zap.String("file", file.Name),
				zap.Error(err))
			util.CSVFilesProcessedTotal.WithLabelValues("failed").Inc()
			result.Logs = append(result.Logs, fmt.Sprintf("Failed to parse %s", file.Name))
			continue
		}

		for i := range records {
			records[i].Source = file.Name
		}
		allRecords = append(allRecords, records...)

		util.CSVFilesProcessedTotal.WithLabelValues("ok").Inc()
		result.Logs = append(result.Logs, fmt.Sprintf("Parsed %d products from %s", len(records), file.Name))
	}

	result.TotalProductsParsed = len(allRecords)

	winners := pricing.Values(allRecords, pricing.Consolidate(allRecords))
	result.UniqueProducts = len(winners)
	result.Logs = append(result.Logs, fmt.Sprintf("Consolidated to %d unique best-price products", len(winners)))

	for _, record := range winners {
		product := recordToProduct(record)

		created, err := s.inventory.UpsertProductBySKU(ctx, product)
		if err != nil {
			s.logger.Error("Upsert failed, skipping record",
				zap.String("sku", product.SKU),
				zap.Error(err))
			util.ProductsUpsertedTotal.WithLabelValues("failed").Inc()
			continue
		}

		if created {
			result.DatabaseStats.Created++
			util.ProductsUpsertedTotal.WithLabelValues("created").Inc()
		} else {
			result.DatabaseStats.Updated++
			util.ProductsUpsertedTotal.WithLabelValues("updated").Inc()
		}
		result.Products = append(result.Products, *product)
	}

	result.Logs = append(result.Logs, fmt.Sprintf("Database: %d created, %d updated",
		result.DatabaseStats.Created, result.DatabaseStats.Updated))

	if s.publisher != nil {
		if err := s.publisher.PublishInventoryImported(ctx, len(files), result.TotalProductsParsed,
			result.UniqueProducts, result.DatabaseStats.Created, result.DatabaseStats.Updated); err != nil {
			s.logger.Error("Failed to publish InventoryImported event", zap.Error(err))
		}
	}

	return result, nil
}

// recordToProduct maps one consolidated supplier record onto a product
// document. The retail markup is applied here, once; read paths never
// recompute it.
func recordToProduct(r models.RawRecord) *models.Product {
	retail := models.ApplyMarkup(r.WholesalePrice)

	sku := r.SKU
	if sku == "" {
		sku = slugify(fmt.Sprintf("%s-%s-%s-%s-%s", r.Brand, r.Model, r.Storage, r.Grade, r.Origin))
	}

	return &models.Product{
		SKU:            sku,
		Name:           r.Model,
		Brand:          r.Brand,
		Model:          r.Model,
		Category:       categoryFor(r.Model),
		Storage:        r.Storage,
		Grade:          r.Grade,
		Origin:         r.Origin,
		WholesalePrice: r.WholesalePrice,
		RetailPrice:    retail,
		InStock:        r.Units > 0,
		Source:         r.Source,
		Variations: []models.Variation{{
			Storage:        r.Storage,
			Grade:          r.Grade,
			Origin:         r.Origin,
			WholesalePrice: r.WholesalePrice,
			RetailPrice:    retail,
			Stock:          r.Units,
		}},
	}
}

func categoryFor(model string) string {
	lower := strings.ToLower(model)
	if strings.Contains(lower, "ipad") || strings.Contains(lower, "tab") {
		return models.CategoryTablet
	}
	return models.CategoryPhone
}

func slugify(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
