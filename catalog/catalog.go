// Package catalog maps detected object classes to purchasable products.
//
// The catalog is immutable after construction; backing data is either the
// compiled-in baseline or a JSON file loaded once at process start.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"restock-backend/models"
)

type entry struct {
	product       models.Product
	variantsBySKU map[string]models.ProductVariant
}

// Catalog resolves object classes to products and variants and decides
// whether a fill level should trigger a reorder prompt.
type Catalog struct {
	entries map[string]entry
}

// New builds a catalog from the given products, keyed by lower-cased object
// class. The default variant's SKU is always a valid variant key.
func New(products []models.Product) *Catalog {
	entries := make(map[string]entry, len(products))
	for _, p := range products {
		variants := make(map[string]models.ProductVariant, len(p.Variants)+1)
		variants[p.DefaultVariant.SKU] = p.DefaultVariant
		for _, v := range p.Variants {
			variants[v.SKU] = v
		}
		entries[strings.ToLower(p.ObjectClass)] = entry{
			product:       p,
			variantsBySKU: variants,
		}
	}
	return &Catalog{entries: entries}
}

// Products returns all catalog products.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.product)
	}
	return out
}

// GetByObjectClass looks up a product by object class, case-insensitively.
func (c *Catalog) GetByObjectClass(objectClass string) (models.Product, bool) {
	e, ok := c.entries[strings.ToLower(objectClass)]
	if !ok {
		return models.Product{}, false
	}
	return e.product, true
}

// ResolveVariant returns the variant for the given SKU within the product
// answering to objectClass. An empty SKU resolves to the default variant.
// A miss is recoverable; callers must not treat it as fatal.
func (c *Catalog) ResolveVariant(objectClass, sku string) (models.ProductVariant, bool) {
	e, ok := c.entries[strings.ToLower(objectClass)]
	if !ok {
		return models.ProductVariant{}, false
	}
	if sku == "" {
		return e.product.DefaultVariant, true
	}
	v, ok := e.variantsBySKU[sku]
	return v, ok
}

// ShouldPrompt reports whether a detection at the given fill level crosses
// the product's reorder threshold. Unknown classes never prompt.
func (c *Catalog) ShouldPrompt(objectClass string, fill models.FillLevel) bool {
	e, ok := c.entries[strings.ToLower(objectClass)]
	if !ok {
		return false
	}
	fillRank, ok := fill.Rank()
	if !ok {
		return false
	}
	thresholdRank, ok := e.product.ReorderThreshold.Rank()
	if !ok {
		return false
	}
	return fillRank >= thresholdRank
}

// Default returns the compiled-in baseline catalog.
func Default() *Catalog {
	return New(baselineProducts())
}

// LoadFile reads product definitions from a JSON file. Used once at startup
// when CATALOG_PATH is configured; there is no hot reload.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no products", path)
	}
	for _, p := range products {
		if p.ID == "" || p.ObjectClass == "" || p.DefaultVariant.SKU == "" {
			return nil, fmt.Errorf("catalog product %q missing id, object_class or default variant", p.ID)
		}
		if _, ok := p.ReorderThreshold.Rank(); !ok {
			return nil, fmt.Errorf("catalog product %q has unknown reorder_threshold %q", p.ID, p.ReorderThreshold)
		}
	}
	return New(products), nil
}

func baselineProducts() []models.Product {
	return []models.Product{
		{
			ID:          "hydration_001",
			ObjectClass: "water_bottle",
			DefaultVariant: models.ProductVariant{
				SKU:          "WATER-24PK",
				Label:        "Spring Water 24-pack",
				Size:         "24 x 16.9 oz",
				UnitPriceUSD: 12.99,
			},
			Variants: []models.ProductVariant{
				{
					SKU:          "WATER-12PK",
					Label:        "Spring Water 12-pack",
					Size:         "12 x 16.9 oz",
					UnitPriceUSD: 7.49,
				},
			},
			ReorderThreshold: models.FillLevelNearlyEmpty,
			Metadata:         map[string]string{"provider": "amazon"},
		},
		{
			ID:          "sunscreen_001",
			ObjectClass: "sunscreen",
			DefaultVariant: models.ProductVariant{
				SKU:          "SUN-50SPF",
				Label:        "SPF 50 Sunscreen",
				Size:         "6 oz",
				UnitPriceUSD: 15.49,
			},
			ReorderThreshold: models.FillLevelNearlyEmpty,
			Metadata:         map[string]string{"provider": "instacart"},
		},
		{
			ID:          "soap_refill_001",
			ObjectClass: "soap_dispenser",
			DefaultVariant: models.ProductVariant{
				SKU:          "SOAP-REFILL",
				Label:        "Foaming Soap Refill",
				Size:         "1 L",
				UnitPriceUSD: 9.99,
			},
			ReorderThreshold: models.FillLevelEmpty,
			Metadata:         map[string]string{"provider": "amazon"},
		},
	}
}
