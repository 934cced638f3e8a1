package service

import (
	"context"
	"fmt"

	"cryzo-api/internal/models"
	"cryzo-api/internal/store"
	"cryzo-api/internal/util"

	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ProductService handles catalog reads and admin writes
type ProductService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(st *store.Store) *ProductService {
	return &ProductService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// Pagination is the page metadata returned alongside every product list.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// NormalizePage applies pagination defaults and the upper limit cap.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func paginate(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// List returns a filtered catalog page. A page past the last one returns
// an empty product list with the correct total.
func (s *ProductService) List(ctx context.Context, filter store.ProductFilter, page, limit int) (*ProductPage, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.List")
	defer span.End()

	page, limit = NormalizePage(page, limit)

	products, total, err := s.store.ListProducts(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ProductPage{
		Products:   products,
		Pagination: paginate(page, limit, total),
	}, nil
}

// Get retrieves one product by id
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

// Create validates and persists a new product
func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if product.Name == "" || product.Model == "" {
		return fmt.Errorf("%w: name and model are required", ErrValidation)
	}
	if product.Category != models.CategoryPhone && product.Category != models.CategoryTablet {
		return fmt.Errorf("%w: category must be %s or %s", ErrValidation, models.CategoryPhone, models.CategoryTablet)
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return err
	}

	s.logger.Info("Product created",
		zap.String("id", product.ID.Hex()),
		zap.String("model", product.Model))
	return nil
}

// ProfitReport is the regional resale estimate for one product.
type ProfitReport struct {
	Product struct {
		ID    string `json:"id"`
		SKU   string `json:"sku,omitempty"`
		Brand string `json:"brand"`
		Model string `json:"model"`
	} `json:"product"`
	models.ProfitAnalysis
}

// Profit computes the regional resale estimate for a product.
func (s *ProductService) Profit(ctx context.Context, id, region string) (*ProfitReport, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &ProfitReport{ProfitAnalysis: AnalyzeProfit(region, product.RetailPrice)}
	report.Product.ID = product.ID.Hex()
	report.Product.SKU = product.SKU
	report.Product.Brand = product.Brand
	report.Product.Model = product.Model
	return report, nil
}
