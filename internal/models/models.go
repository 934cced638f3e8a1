package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product categories
const (
	CategoryPhone  = "Phone"
	CategoryTablet = "Tablet"
)

// RetailMarkup is the fixed wholesale-to-retail multiplier applied once at
// ingestion time. Read paths never recompute it.
const RetailMarkup = 1.10

// Product represents a catalog entry with its sellable variations.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SKU            string             `bson:"sku,omitempty" json:"sku,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Brand          string             `bson:"brand" json:"brand"`
	Model          string             `bson:"model" json:"model"`
	Category       string             `bson:"category" json:"category"`
	Storage        string             `bson:"storage,omitempty" json:"storage,omitempty"`
	Grade          string             `bson:"grade,omitempty" json:"grade,omitempty"`
	Origin         string             `bson:"origin,omitempty" json:"origin,omitempty"`
	WholesalePrice float64            `bson:"wholesalePrice" json:"wholesalePrice"`
	RetailPrice    float64            `bson:"retailPrice" json:"retailPrice"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	InStock        bool               `bson:"inStock" json:"inStock"`
	Source         string             `bson:"source,omitempty" json:"source,omitempty"`
	Variations     []Variation        `bson:"variations" json:"variations"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Variation is one concrete sellable configuration of a Product. Variations
// have no identity of their own; replacing a product's variation list is a
// full overwrite.
type Variation struct {
	Storage        string  `bson:"storage" json:"storage"`
	Grade          string  `bson:"grade" json:"grade"`
	Color          string  `bson:"color,omitempty" json:"color,omitempty"`
	Origin         string  `bson:"origin,omitempty" json:"origin,omitempty"`
	WholesalePrice float64 `bson:"wholesalePrice" json:"wholesalePrice"`
	RetailPrice    float64 `bson:"retailPrice" json:"retailPrice"`
	Stock          int     `bson:"stock" json:"stock"`
	Note           string  `bson:"note,omitempty" json:"note,omitempty"`
}

// ApplyMarkup derives the retail price from a wholesale price.
func ApplyMarkup(wholesale float64) float64 {
	return math.Round(wholesale * RetailMarkup)
}

// Order is a customer order. Orders are a single write; there is no
// lifecycle beyond the status recorded at creation.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerEmail string             `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	Items         []CartItem         `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Status        string             `bson:"status" json:"status"`
	SessionID     string             `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// Order statuses
const (
	OrderStatusPending = "PENDING"
	OrderStatusPaid    = "PAID"
)

// CartItem is one line of a checkout cart.
type CartItem struct {
	Brand    string  `bson:"brand" json:"brand"`
	Model    string  `bson:"model" json:"model"`
	Grade    string  `bson:"grade,omitempty" json:"grade,omitempty"`
	Storage  string  `bson:"storage,omitempty" json:"storage,omitempty"`
	Origin   string  `bson:"origin,omitempty" json:"origin,omitempty"`
	ImageURL string  `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// RawRecord is one supplier price-list row as parsed upstream. The
// consolidation engine consumes these verbatim and does not impute missing
// prices or stock.
type RawRecord struct {
	SKU            string  `json:"sku"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	Storage        string  `json:"storage"`
	Grade          string  `json:"grade"`
	Origin         string  `json:"phoneOrigin"`
	Region         string  `json:"wholesalerRegion"`
	Carrier        string  `json:"carrier"`
	SIMType        string  `json:"simType"`
	WholesalePrice float64 `json:"retailPrice"`
	Units          int     `json:"units"`
	Source         string  `json:"-"`
}

// SearchFilters is the structured query a language model extracts from free
// text.
type SearchFilters struct {
	Brand    string   `json:"brand,omitempty"`
	Model    string   `json:"model,omitempty"`
	Storage  string   `json:"storage,omitempty"`
	Grade    string   `json:"grade,omitempty"`
	Origin   string   `json:"phoneOrigin,omitempty"`
	Region   string   `json:"region,omitempty"`
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
}

// Empty reports whether no filter field is set.
func (f SearchFilters) Empty() bool {
	return f.Brand == "" && f.Model == "" && f.Storage == "" && f.Grade == "" &&
		f.Origin == "" && f.Region == "" && f.PriceMin == nil && f.PriceMax == nil
}

// ProfitAnalysisBatch carries one analysis per product of a search result,
// in result order.
type ProfitAnalysisBatch struct {
	Region     string           `json:"region"`
	PerProduct []ProfitAnalysis `json:"perProduct"`
}

// ProfitAnalysis is the regional resale estimate attached to products when a
// resale region is known.
type ProfitAnalysis struct {
	Region        string  `json:"region"`
	YourCost      float64 `json:"yourCost"`
	ResalePrice   float64 `json:"resalePrice"`
	ProfitPerUnit float64 `json:"profitPerUnit"`
	MarginPercent float64 `json:"marginPercent"`
}
