package models

// Category is the fixed product taxonomy of the store.
type Category string

const (
	CategoryHeadphones Category = "headphones"
	CategorySpeakers   Category = "speakers"
	CategoryEarphones  Category = "earphones"
)

// Categories lists every valid category, in display order.
var Categories = []Category{CategoryHeadphones, CategorySpeakers, CategoryEarphones}

// ValidCategory reports whether c names one of the fixed categories.
func ValidCategory(c string) bool {
	switch Category(c) {
	case CategoryHeadphones, CategorySpeakers, CategoryEarphones:
		return true
	}
	return false
}

// IncludedItem is one line of a product's "in the box" list.
type IncludedItem struct {
	Quantity int    `json:"quantity"`
	Item     string `json:"item"`
}

// RelatedProduct references another product shown under "you may also like".
type RelatedProduct struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Product is a catalog entry. Products are loaded once at startup and never
// mutated; prices are whole currency units.
type Product struct {
	ID            string           `json:"id"`
	Slug          string           `json:"slug"`
	Name          string           `json:"name"`
	ShortName     string           `json:"shortName"`
	Category      Category         `json:"category"`
	Price         int              `json:"price"`
	Description   string           `json:"description"`
	Features      string           `json:"features"`
	Includes      []IncludedItem   `json:"includes"`
	Image         string           `json:"image"`
	CategoryImage string           `json:"categoryImage"`
	New           bool             `json:"new"`
	Others        []RelatedProduct `json:"others"`
}
