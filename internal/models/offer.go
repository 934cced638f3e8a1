package models

import "fmt"

// Offer is the flattened, one-row-per-variation view of a product. Search
// prompts and chat summaries consume offers instead of the nested document
// shape.
type Offer struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	Category  string  `json:"category"`
	Storage   string  `json:"storage"`
	Grade     string  `json:"grade"`
	Color     string  `json:"color,omitempty"`
	Origin    string  `json:"origin,omitempty"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Note      string  `json:"note,omitempty"`
}

// FlattenProduct maps one product document to one offer per variation. A
// product without variations yields a single offer built from its top-level
// fields.
func FlattenProduct(p Product) []Offer {
	if len(p.Variations) == 0 {
		return []Offer{{
			ProductID: p.ID.Hex(),
			Name:      p.Name,
			Brand:     p.Brand,
			Model:     p.Model,
			Category:  p.Category,
			Storage:   p.Storage,
			Grade:     p.Grade,
			Origin:    p.Origin,
			Price:     p.RetailPrice,
			Stock:     boolToStock(p.InStock),
		}}
	}

	offers := make([]Offer, 0, len(p.Variations))
	for _, v := range p.Variations {
		offers = append(offers, Offer{
			ProductID: p.ID.Hex(),
			Name:      p.Name,
			Brand:     p.Brand,
			Model:     p.Model,
			Category:  p.Category,
			Storage:   v.Storage,
			Grade:     v.Grade,
			Color:     v.Color,
			Origin:    v.Origin,
			Price:     v.RetailPrice,
			Stock:     v.Stock,
			Note:      v.Note,
		})
	}
	return offers
}

// Summary renders the offer as a single inventory line for chat context.
func (o Offer) Summary() string {
	return fmt.Sprintf("%s %s %s %s - $%.0f (%d units)", o.Brand, o.Model, o.Storage, o.Grade, o.Price, o.Stock)
}

func boolToStock(inStock bool) int {
	if inStock {
		return 1
	}
	return 0
}
