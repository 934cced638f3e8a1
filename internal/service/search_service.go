package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cryzo-api/internal/cache"
	"cryzo-api/internal/llm"
	"cryzo-api/internal/models"
	"cryzo-api/internal/store"
	"cryzo-api/internal/util"

	"go.uber.org/zap"
)

const (
	searchResultLimit  = 50
	chatInventoryLimit = 1000
)

// Catalog is the read surface the search façade needs from the store.
type Catalog interface {
	SearchProducts(ctx context.Context, f store.ProductFilter, limit int) ([]models.Product, error)
	FallbackSearch(ctx context.Context, term string, limit int) ([]models.Product, error)
}

// SearchService turns free text into catalog results via an external
// language model, degrading to substring matching when the model
// misbehaves.
type SearchService struct {
	catalog  Catalog
	parser   llm.Client
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSearchService creates a new search service
func NewSearchService(catalog Catalog, parser llm.Client, c cache.Cache, cacheTTL time.Duration) *SearchService {
	return &SearchService{
		catalog:  catalog,
		parser:   parser,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   util.GetLogger(),
	}
}

// SearchResponse is the wire shape of a search result.
type SearchResponse struct {
	Success        bool                        `json:"success"`
	Query          string                      `json:"query"`
	Model          string                      `json:"model"`
	Message        string                      `json:"message"`
	Products       []models.Product            `json:"products"`
	Filters        models.SearchFilters        `json:"filters"`
	ProfitAnalysis *models.ProfitAnalysisBatch `json:"profitAnalysis,omitempty"`
	ProcessingTime string                      `json:"processingTime"`
	Fallback       bool                        `json:"fallback,omitempty"`
}

// Search resolves a natural-language query to products. Upstream model
// failures of any kind degrade to a substring match; the caller never
// sees an error for them.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResponse, error) {
	ctx, span := util.StartSpan(ctx, "SearchService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	cacheKey := "search:" + strings.ToLower(query)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var resp SearchResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			util.SearchCacheHitsTotal.Inc()
			resp.ProcessingTime = time.Since(start).String()
			return &resp, nil
		}
	}

	filters, model, err := s.parser.ParseQuery(ctx, query)
	if err != nil {
		s.logger.Warn("Query parse failed, using substring fallback",
			zap.String("query", query),
			zap.Error(err))
		util.SearchesTotal.WithLabelValues("fallback").Inc()
		return s.fallback(ctx, query, start)
	}

	products, err := s.catalog.SearchProducts(ctx, filtersToStoreFilter(filters), searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}

	resp := &SearchResponse{
		Success:  true,
		Query:    query,
		Model:    model,
		Products: products,
		Filters:  filters,
	}

	if len(products) == 0 {
		resp.Message = "We don't have that product in stock"
	} else {
		resp.Message = fmt.Sprintf("Found %d matching products", len(products))
	}

	if filters.Region != "" && len(products) > 0 {
		resp.ProfitAnalysis = batchProfit(filters.Region, products)
	}

	util.SearchesTotal.WithLabelValues("ok").Inc()
	s.storeInCache(ctx, cacheKey, resp)

	resp.ProcessingTime = time.Since(start).String()
	return resp, nil
}

func (s *SearchService) fallback(ctx context.Context, query string, start time.Time) (*SearchResponse, error) {
	products, err := s.catalog.FallbackSearch(ctx, query, searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("fallback search failed: %w", err)
	}

	resp := &SearchResponse{
		Success:        true,
		Query:          query,
		Products:       products,
		Filters:        models.SearchFilters{},
		Fallback:       true,
		ProcessingTime: time.Since(start).String(),
	}
	if len(products) == 0 {
		resp.Message = "We don't have that product in stock"
	} else {
		resp.Message = fmt.Sprintf("Showing %d closest matches", len(products))
	}
	return resp, nil
}

func (s *SearchService) storeInCache(ctx context.Context, key string, resp *SearchResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache search response", zap.Error(err))
	}
}

// filtersToStoreFilter maps parsed model output onto the store's
// allowlisted filter.
func filtersToStoreFilter(f models.SearchFilters) store.ProductFilter {
	return store.ProductFilter{
		Brand:    f.Brand,
		Model:    f.Model,
		Storage:  f.Storage,
		Grade:    f.Grade,
		Origin:   f.Origin,
		MinPrice: f.PriceMin,
		MaxPrice: f.PriceMax,
	}
}

func batchProfit(region string, products []models.Product) *models.ProfitAnalysisBatch {
	analyses := make([]models.ProfitAnalysis, 0, len(products))
	for _, p := range products {
		analyses = append(analyses, AnalyzeProfit(region, p.RetailPrice))
	}
	return &models.ProfitAnalysisBatch{Region: region, PerProduct: analyses}
}
