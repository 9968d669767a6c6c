// Package places holds the client-side place model: the category set and the
// per-search grouping of results.
package places

import "nearby/internal/models/response_models"

type Place = response_models.Place

// All is the filter sentinel. It is never sent as a query category.
const All = "All"

var categories = []string{All, "Restaurants", "Cafes", "Parks", "Museums", "Shops"}

// Categories returns the filter set in display order, sentinel first.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// QueryCategories returns the categories that are fanned out per search.
func QueryCategories() []string {
	return Categories()[1:]
}

// IsCategory reports whether c is a member of the category set or the sentinel.
func IsCategory(c string) bool {
	for _, known := range categories {
		if known == c {
			return true
		}
	}
	return false
}

type Group struct {
	Category string
	Places   []Place
}

// Grouped maps category to places, ordered by category enumeration order.
// It is rebuilt for every search and never holds an empty group.
type Grouped []Group

// NewGrouped builds a Grouped from per-category results, dropping empty
// entries and categories not in order.
func NewGrouped(order []string, byCategory map[string][]Place) Grouped {
	g := make(Grouped, 0, len(byCategory))
	for _, c := range order {
		if ps := byCategory[c]; len(ps) > 0 {
			g = append(g, Group{Category: c, Places: ps})
		}
	}
	return g
}

func (g Grouped) Get(category string) ([]Place, bool) {
	for _, group := range g {
		if group.Category == category {
			return group.Places, true
		}
	}
	return nil, false
}

func (g Grouped) Keys() []string {
	keys := make([]string, len(g))
	for i, group := range g {
		keys[i] = group.Category
	}
	return keys
}

// Count is the total number of places across groups.
func (g Grouped) Count() int {
	n := 0
	for _, group := range g {
		n += len(group.Places)
	}
	return n
}
