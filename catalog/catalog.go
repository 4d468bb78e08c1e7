package catalog

import (
	"sort"

	"auris/models"
)

// Catalog is the static, read-only product collection. It is built once at
// startup from the seed data and never mutated afterwards.
type Catalog struct {
	ordered []models.Product
	bySlug  map[string]models.Product
	byID    map[string]models.Product
}

// New builds a catalog from the given products, preserving their order.
func New(products []models.Product) *Catalog {
	c := &Catalog{
		ordered: products,
		bySlug:  make(map[string]models.Product, len(products)),
		byID:    make(map[string]models.Product, len(products)),
	}
	for _, p := range products {
		c.bySlug[p.Slug] = p
		c.byID[p.ID] = p
	}
	return c
}

// Default holds the store's catalog, seeded from data.go.
var Default = New(seedProducts)

// All returns every product in catalog order.
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// BySlug looks up a product by its URL slug.
func (c *Catalog) BySlug(slug string) (models.Product, bool) {
	p, ok := c.bySlug[slug]
	return p, ok
}

// ByID looks up a product by its id.
func (c *Catalog) ByID(id string) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ByCategory returns the products of one category, new releases first.
// An unknown category yields an empty slice, never an error.
func (c *Catalog) ByCategory(category string) []models.Product {
	out := []models.Product{}
	for _, p := range c.ordered {
		if string(p.Category) == category {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].New && !out[j].New
	})
	return out
}
