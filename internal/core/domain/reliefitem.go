package domain

import (
	"fmt"

	apperrors "github.com/reliefwatch/relief-pulse/internal/core/errors"
)

// Category is a relief sector a text can be judged to be about.
type Category string

// Relief categories. The declaration order here is the fixed enumeration
// order observable in classifier evaluation and report output; changing it
// changes tie-breaks and output ordering.
const (
	CategoryCash           Category = "CASH"
	CategoryMedical        Category = "MEDICAL"
	CategoryShelter        Category = "SHELTER"
	CategoryFood           Category = "FOOD"
	CategoryTransportation Category = "TRANSPORTATION"
)

// Categories returns all relief categories in enumeration order.
func Categories() []Category {
	return []Category{
		CategoryCash,
		CategoryMedical,
		CategoryShelter,
		CategoryFood,
		CategoryTransportation,
	}
}

// DisplayName is the human-readable sector name used in reports.
func (c Category) DisplayName() string {
	switch c {
	case CategoryCash:
		return "Cash Assistance"
	case CategoryMedical:
		return "Medical Support"
	case CategoryShelter:
		return "Shelter"
	case CategoryFood:
		return "Food"
	case CategoryTransportation:
		return "Transportation"
	default:
		return string(c)
	}
}

// ParseCategory maps the wire name of a category to its enum value.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryCash, CategoryMedical, CategoryShelter, CategoryFood, CategoryTransportation:
		return Category(s), nil
	default:
		return "", fmt.Errorf("%w: category %q", apperrors.ErrUnknownEnum, s)
	}
}

// Relief item priority bounds.
const (
	MinPriority = 1
	MaxPriority = 5
)

// ReliefItem is an immutable relief-sector assignment with a priority.
// Higher priority sorts first.
type ReliefItem struct {
	Category    Category
	Description string
	Priority    int
}

// NewReliefItem validates and builds a ReliefItem.
func NewReliefItem(category Category, description string, priority int) (ReliefItem, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return ReliefItem{}, err
	}

	if priority < MinPriority || priority > MaxPriority {
		return ReliefItem{}, fmt.Errorf("%w: got %d", apperrors.ErrInvalidPriority, priority)
	}

	return ReliefItem{Category: category, Description: description, Priority: priority}, nil
}

// Less orders relief items by descending priority.
func (r ReliefItem) Less(other ReliefItem) bool {
	return r.Priority > other.Priority
}
