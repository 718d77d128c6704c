package entity

import (
	"fmt"
	"strings"
)

// Category is a fixed topic identifier used to scope a provider query.
type Category string

// Canonical category set. Provider adapters translate these into their own topic names.
const (
	CategoryGeneral       Category = "general"
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"
)

// DefaultCategory is shown when no category is selected.
const DefaultCategory = CategoryGeneral

var categories = []Category{
	CategoryGeneral,
	CategoryBusiness,
	CategoryEntertainment,
	CategoryHealth,
	CategoryScience,
	CategorySports,
	CategoryTechnology,
}

// Categories returns the canonical categories in navigation order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsValid reports whether c is a member of the canonical set.
func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the category identifier.
func (c Category) String() string {
	return string(c)
}

// ParseCategory normalizes s (trim + lower case) and checks it against the canonical set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", &ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("category %q not found", s),
		}
	}
	return c, nil
}
