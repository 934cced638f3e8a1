package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"cryzo-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductFilter is the allowlisted set of catalog filters. Zero values
// impose no constraint.
type ProductFilter struct {
	Category string
	Brand    string
	Model    string
	Storage  string
	Grade    string
	Origin   string
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool
}

// buildProductFilter translates a ProductFilter into a mongo query
// document. Brand and model match as case-insensitive substrings; the
// rest match exactly. Price bounds are inclusive and independently
// optional; an inverted range is passed through and simply matches
// nothing.
func buildProductFilter(f ProductFilter) bson.M {
	query := bson.M{}

	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Brand != "" {
		query["brand"] = primitive.Regex{Pattern: f.Brand, Options: "i"}
	}
	if f.Model != "" {
		query["model"] = primitive.Regex{Pattern: f.Model, Options: "i"}
	}
	if f.Storage != "" {
		query["storage"] = f.Storage
	}
	if f.Grade != "" {
		query["grade"] = f.Grade
	}
	if f.Origin != "" {
		query["origin"] = f.Origin
	}
	if f.InStock != nil {
		query["inStock"] = *f.InStock
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["retailPrice"] = price
	}

	return query
}

// ListProducts returns one page of matching products plus the total match
// count.
func (s *Store) ListProducts(ctx context.Context, f ProductFilter, page, limit int) ([]models.Product, int64, error) {
	query := buildProductFilter(f)

	total, err := s.products.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	skip := int64((page - 1) * limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cursor, err := s.products.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0, limit)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, total, nil
}

// SearchProducts returns in-stock products matching the filter, sorted by
// retail price ascending, capped at limit.
func (s *Store) SearchProducts(ctx context.Context, f ProductFilter, limit int) ([]models.Product, error) {
	inStock := true
	f.InStock = &inStock
	query := buildProductFilter(f)

	opts := options.Find().
		SetSort(bson.D{{Key: "retailPrice", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := s.products.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// FallbackSearch matches term as a case-insensitive substring across
// name, model and category. Lower recall than a parsed filter; used when
// the language model is unavailable.
func (s *Store) FallbackSearch(ctx context.Context, term string, limit int) ([]models.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	query := bson.M{
		"inStock": true,
		"$or": []bson.M{
			{"name": pattern},
			{"model": pattern},
			{"category": pattern},
		},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "retailPrice", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := s.products.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("fallback search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetProductByID retrieves a product by its hex object id
func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}

	var product models.Product
	err = s.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product document
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := s.products.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

// UpsertProductBySKU writes a product keyed by SKU, creating it when
// absent. Returns true when a new document was created.
func (s *Store) UpsertProductBySKU(ctx context.Context, product *models.Product) (bool, error) {
	now := time.Now()
	product.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"name":           product.Name,
			"brand":          product.Brand,
			"model":          product.Model,
			"category":       product.Category,
			"storage":        product.Storage,
			"grade":          product.Grade,
			"origin":         product.Origin,
			"wholesalePrice": product.WholesalePrice,
			"retailPrice":    product.RetailPrice,
			"inStock":        product.InStock,
			"source":         product.Source,
			"variations":     product.Variations,
			"updatedAt":      now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	result, err := s.products.UpdateOne(ctx,
		bson.M{"sku": product.SKU},
		update,
		options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to upsert product %s: %w", product.SKU, err)
	}

	return result.UpsertedCount > 0, nil
}
