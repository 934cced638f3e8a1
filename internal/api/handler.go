package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cryzo-api/internal/models"
	"cryzo-api/internal/service"
	"cryzo-api/internal/store"
	"cryzo-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxCSVFiles    = 10
	maxCSVFileSize = 10 << 20 // 10MB
)

// ProductReader is the catalog surface the handlers use.
type ProductReader interface {
	List(ctx context.Context, filter store.ProductFilter, page, limit int) (*service.ProductPage, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Profit(ctx context.Context, id, region string) (*service.ProfitReport, error)
}

// Searcher resolves natural-language queries.
type Searcher interface {
	Search(ctx context.Context, query string) (*service.SearchResponse, error)
}

// Chatter answers assistant messages.
type Chatter interface {
	Chat(ctx context.Context, message string) (*service.ChatResponse, error)
}

// CheckoutProvider creates hosted payment sessions.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, req *service.CheckoutRequest) (*service.CheckoutResponse, error)
}

// Ingester processes supplier CSV batches.
type Ingester interface {
	ProcessFiles(ctx context.Context, files []service.UploadedFile) (*service.IngestResult, error)
}

// OrderManager persists and lists orders.
type OrderManager interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
}

// Contact is the static contact card served at /api/contact.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Handler contains HTTP handlers
type Handler struct {
	products Searcher
	catalog  ProductReader
	chat     Chatter
	checkout CheckoutProvider
	ingest   Ingester
	orders   OrderManager
	contact  Contact
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog ProductReader,
	search Searcher,
	chat Chatter,
	checkout CheckoutProvider,
	ingest Ingester,
	orders OrderManager,
	contact Contact,
) *Handler {
	return &Handler{
		catalog:  catalog,
		products: search,
		chat:     chat,
		checkout: checkout,
		ingest:   ingest,
		orders:   orders,
		contact:  contact,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/", h.root)
	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/contact", h.getContact)

		api.GET("/products", h.listProducts)
		api.POST("/products", h.createProduct)
		api.GET("/products/:id", h.getProduct)
		api.GET("/products/:id/profit", h.getProfit)

		api.POST("/search", h.search)
		api.POST("/chat", h.chatMessage)

		api.POST("/csv/process", h.processCSV)

		api.POST("/checkout", h.createCheckoutSession)
		api.POST("/orders/create-checkout-session", h.createCheckoutSession)
		api.POST("/orders", h.createOrder)
		api.GET("/orders", h.listOrders)
	}
}

func (h *Handler) root(c *gin.Context) {
	c.String(http.StatusOK, "Cryzo Backend is running...")
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) getContact(c *gin.Context) {
	c.JSON(http.StatusOK, h.contact)
}

// listProducts handles filtered catalog listing with pagination
func (h *Handler) listProducts(c *gin.Context) {
	filter := store.ProductFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Model:    c.Query("model"),
		Storage:  c.Query("storage"),
		Grade:    c.Query("grade"),
		Origin:   c.Query("origin"),
	}

	if v := c.Query("minPrice"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &min
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &max
		}
	}
	if v := c.Query("inStock"); v != "" {
		inStock := v == "true"
		filter.InStock = &inStock
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.catalog.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// getProduct handles get product by ID
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// createProduct handles admin product creation
func (h *Handler) createProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.catalog.Create(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// getProfit handles regional profit estimation for a product
func (h *Handler) getProfit(c *gin.Context) {
	region := c.DefaultQuery("region", "Nigeria")

	report, err := h.catalog.Profit(c.Request.Context(), c.Param("id"), region)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// search handles natural-language product search
func (h *Handler) search(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	result, err := h.products.Search(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// chatMessage handles assistant chat
func (h *Handler) chatMessage(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	result, err := h.chat.Chat(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// processCSV handles supplier price-list uploads
func (h *Handler) processCSV(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No CSV files uploaded"})
		return
	}

	uploads := form.File["csvFiles"]
	if len(uploads) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No CSV files uploaded"})
		return
	}
	if len(uploads) > maxCSVFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many files", "message": "At most 10 CSV files per batch"})
		return
	}

	files := make([]service.UploadedFile, 0, len(uploads))
	for _, upload := range uploads {
		if !strings.HasSuffix(strings.ToLower(upload.Filename), ".csv") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only CSV files are allowed", "message": upload.Filename})
			return
		}
		if upload.Size > maxCSVFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large", "message": upload.Filename})
			return
		}

		f, err := upload.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(c, err)
			return
		}

		files = append(files, service.UploadedFile{Name: upload.Filename, Content: content})
	}

	result, err := h.ingest.ProcessFiles(c.Request.Context(), files)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// createCheckoutSession handles cart checkout
func (h *Handler) createCheckoutSession(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.checkout.CreateSession(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// createOrder handles order creation
func (h *Handler) createOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.orders.Create(c.Request.Context(), &order); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// listOrders handles listing recent orders
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// respondError translates service errors into the response taxonomy.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Request failed",
			"message": err.Error(),
		})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
