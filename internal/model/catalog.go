package model

// AllCategories is the category selector that matches every item.
const AllCategories = "all"

// Category groups catalogue items (plastik, kertas, logam, ...).
type Category struct {
	ID   string `json:"id" yaml:"id" db:"id"`
	Name string `json:"name" yaml:"name" db:"name"`
}

// PriceRange is a buying price range in rupiah per unit.
type PriceRange struct {
	Min float64 `json:"min" yaml:"min" db:"price_min"`
	Max float64 `json:"max" yaml:"max" db:"price_max"`
}

// CatalogItem represents a recyclable waste type in the catalogue.
type CatalogItem struct {
	ID          string     `json:"id" yaml:"id" db:"id"`
	Name        string     `json:"name" yaml:"name" db:"name"`
	Description string     `json:"description" yaml:"description" db:"description"`
	Category    Category   `json:"category" yaml:"category"`
	Price       PriceRange `json:"price" yaml:"price"`
	Unit        string     `json:"unit" yaml:"unit" db:"unit"`
}

// ListingName returns the name used for text search and name ordering.
func (c CatalogItem) ListingName() string { return c.Name }

// ListingDescription returns the description used for text search.
func (c CatalogItem) ListingDescription() string { return c.Description }

// ListingCategory returns the category identifier used for category filtering.
func (c CatalogItem) ListingCategory() string { return c.Category.ID }

// ListingPrice returns the minimum price of the range.
func (c CatalogItem) ListingPrice() (float64, bool) { return c.Price.Min, true }
