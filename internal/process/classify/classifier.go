// Package classify assigns relief categories to free text using ordered
// keyword-pattern rule tables. The tables are data, not code: categories are
// evaluated in the fixed enumeration order, patterns within a category in
// declaration order, and the first matching pattern wins. Classification is
// not multi-label.
package classify

import (
	"regexp"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	"github.com/reliefwatch/relief-pulse/internal/process/textprep"
)

const (
	autoDescription = "Auto-classified"
	autoPriority    = 3
)

// Rules maps each category to its ordered pattern list.
type Rules map[domain.Category][]*regexp.Regexp

// defaultRules builds the stock keyword tables. Every pattern requires a
// whole-word match of one of its alternatives inside the normalized text.
func defaultRules() Rules {
	return Rules{
		domain.CategoryCash: {
			wordPattern(`cash|money|financial aid|economic support`),
			wordPattern(`subsidy|funds|grants|allowance`),
		},
		domain.CategoryMedical: {
			wordPattern(`medical|healthcare|hospital|doctor|medicine|ambulance`),
			wordPattern(`treatment|therapy|vaccine|health|nursing`),
		},
		domain.CategoryShelter: {
			wordPattern(`shelter|housing|house|home|accommodation|roof`),
			wordPattern(`tent|temporary|refugee|displaced`),
		},
		domain.CategoryFood: {
			wordPattern(`food|meal|rice|water|drinking|bread|grain`),
			wordPattern(`nutrition|hungry|starving|eat|provisions`),
		},
		domain.CategoryTransportation: {
			wordPattern(`transportation|vehicle|car|bus|truck|transport`),
			wordPattern(`mobility|road|travel|communication|access`),
		},
	}
}

func wordPattern(alternatives string) *regexp.Regexp {
	return regexp.MustCompile(`(?i).*\b(` + alternatives + `)\b.*`)
}

// Classifier evaluates the rule tables over normalized text.
type Classifier struct {
	order []domain.Category
	rules Rules
}

// New builds a classifier with the stock rule tables and the fixed category
// enumeration order.
func New() *Classifier {
	return NewWithRules(domain.Categories(), defaultRules())
}

// NewWithRules builds a classifier with a caller-supplied evaluation order
// and rule tables. The order is observable in output: with overlapping
// keywords the earliest category wins.
func NewWithRules(order []domain.Category, rules Rules) *Classifier {
	return &Classifier{order: order, rules: rules}
}

// Classify normalizes the text and returns the first matching category.
// ok is false when no pattern matches across all categories; the caller
// decides whether to default or leave the item unclassified.
func (c *Classifier) Classify(text string) (domain.Category, bool) {
	normalized := textprep.Normalize(text)
	if normalized == "" {
		return "", false
	}

	for _, category := range c.order {
		for _, pattern := range c.rules[category] {
			if pattern.MatchString(normalized) {
				return category, true
			}
		}
	}

	return "", false
}

// ClassifyPost assigns an auto-classified relief item to the post. It is a
// no-op when the post already carries one; existing annotations are never
// overwritten.
func (c *Classifier) ClassifyPost(post *domain.Post) {
	if post.ReliefItem != nil {
		return
	}

	category, ok := c.Classify(post.Content)
	if !ok {
		return
	}

	item, err := domain.NewReliefItem(category, autoDescription, autoPriority)
	if err != nil {
		return
	}

	post.ReliefItem = &item
}

// ClassifyComment assigns an auto-classified relief item to the comment,
// with the same no-op semantics as ClassifyPost.
func (c *Classifier) ClassifyComment(comment *domain.Comment) {
	if comment.ReliefItem != nil {
		return
	}

	category, ok := c.Classify(comment.Content)
	if !ok {
		return
	}

	item, err := domain.NewReliefItem(category, autoDescription, autoPriority)
	if err != nil {
		return
	}

	comment.ReliefItem = &item
}
