package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product maps to the `products` collection. The slug is derived from the
// name and unique across the catalog.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       []string           `bson:"image" json:"image"`
	Category    string             `bson:"category" json:"category"`
	SubCategory string             `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
	Bestseller  bool               `bson:"bestseller" json:"bestseller"`
	Stock       int                `bson:"stock" json:"stock"`
	Organic     bool               `bson:"organic" json:"organic"`
	Date        time.Time          `bson:"date" json:"date"`
}

// AllowedCategories contains the supported product categories used across the app.
var AllowedCategories = []string{
	"Herbs & Spices",
	"Essential Oils",
	"Natural Skincare",
	"Organic Food",
	"Wellness Products",
	"Home & Garden",
}

func validCategory(category string) bool {
	for _, c := range AllowedCategories {
		if category == c {
			return true
		}
	}
	return false
}

// Sort orders accepted by the list endpoint.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
)

// ListQuery carries the optional catalog filters. An empty Sort falls back
// to newest-first.
type ListQuery struct {
	Category string
	Search   string
	Sort     string
}
