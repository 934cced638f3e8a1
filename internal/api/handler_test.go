package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cryzo-api/internal/models"
	"cryzo-api/internal/service"
	"cryzo-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	lastFilter store.ProductFilter
	lastPage   int
	lastLimit  int
	page       *service.ProductPage
	getErr     error
}

func (f *fakeCatalog) List(_ context.Context, filter store.ProductFilter, page, limit int) (*service.ProductPage, error) {
	f.lastFilter = filter
	f.lastPage = page
	f.lastLimit = limit
	return f.page, nil
}

func (f *fakeCatalog) Get(context.Context, string) (*models.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.Product{Brand: "Apple", Model: "iPhone 15"}, nil
}

func (f *fakeCatalog) Create(_ context.Context, p *models.Product) error {
	if p.Name == "" {
		return service.ErrValidation
	}
	return nil
}

func (f *fakeCatalog) Profit(context.Context, string, string) (*service.ProfitReport, error) {
	return &service.ProfitReport{}, nil
}

type fakeSearcher struct {
	resp *service.SearchResponse
	err  error
}

func (f *fakeSearcher) Search(context.Context, string) (*service.SearchResponse, error) {
	return f.resp, f.err
}

type fakeChatter struct{}

func (fakeChatter) Chat(context.Context, string) (*service.ChatResponse, error) {
	return &service.ChatResponse{Success: true, Response: "hi", Intent: service.IntentGeneral}, nil
}

type fakeCheckout struct{ err error }

func (f *fakeCheckout) CreateSession(context.Context, *service.CheckoutRequest) (*service.CheckoutResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &service.CheckoutResponse{Success: true, SessionID: "cs_test_1", URL: "https://checkout.example"}, nil
}

type fakeIngester struct{ files []service.UploadedFile }

func (f *fakeIngester) ProcessFiles(_ context.Context, files []service.UploadedFile) (*service.IngestResult, error) {
	f.files = files
	return &service.IngestResult{Success: true, FilesProcessed: len(files)}, nil
}

type fakeOrders struct{}

func (fakeOrders) Create(context.Context, *models.Order) error  { return nil }
func (fakeOrders) List(context.Context) ([]models.Order, error) { return nil, nil }

func newTestRouter(catalog *fakeCatalog, search *fakeSearcher, checkout *fakeCheckout) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewHandler(
		catalog,
		search,
		fakeChatter{},
		checkout,
		&fakeIngester{},
		fakeOrders{},
		Contact{Email: "sales@cryzo.co.in", Phone: "+1 940-400-9316"},
	)
	handler.SetupRoutes(router)
	return router
}

func defaultRouter() *gin.Engine {
	return newTestRouter(&fakeCatalog{page: &service.ProductPage{}}, &fakeSearcher{resp: &service.SearchResponse{Success: true}}, &fakeCheckout{})
}

func TestGetContact(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	defaultRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var contact Contact
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contact))
	assert.Equal(t, "sales@cryzo.co.in", contact.Email)
	assert.Equal(t, "+1 940-400-9316", contact.Phone)
}

func TestListProductsQueryParsing(t *testing.T) {
	catalog := &fakeCatalog{page: &service.ProductPage{}}
	router := newTestRouter(catalog, &fakeSearcher{}, &fakeCheckout{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?brand=Apple&minPrice=100&maxPrice=900&inStock=true&page=3&limit=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Apple", catalog.lastFilter.Brand)
	require.NotNil(t, catalog.lastFilter.MinPrice)
	assert.Equal(t, float64(100), *catalog.lastFilter.MinPrice)
	require.NotNil(t, catalog.lastFilter.MaxPrice)
	assert.Equal(t, float64(900), *catalog.lastFilter.MaxPrice)
	require.NotNil(t, catalog.lastFilter.InStock)
	assert.True(t, *catalog.lastFilter.InStock)
	assert.Equal(t, 3, catalog.lastPage)
	assert.Equal(t, 10, catalog.lastLimit)
}

func TestGetProductNotFound(t *testing.T) {
	catalog := &fakeCatalog{getErr: store.ErrNotFound}
	router := newTestRouter(catalog, &fakeSearcher{}, &fakeCheckout{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/unknown", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	router := newTestRouter(&fakeCatalog{}, &fakeSearcher{err: service.ErrEmptyQuery}, &fakeCheckout{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	router := newTestRouter(&fakeCatalog{}, &fakeSearcher{}, &fakeCheckout{err: service.ErrEmptyCart})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/create-checkout-session", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessCSVNoFiles(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/csv/process", bytes.NewReader(nil))
	defaultRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"model":"iPhone 15","category":"Phone"}`))
	req.Header.Set("Content-Type", "application/json")
	defaultRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
