// Package results holds the presentation logic for search results: category
// filtering, per-card detail disclosure and deterministic card decoration.
package results

import "nearby/internal/places"

// Filter returns the groups visible under selected. It never copies places
// and is safe to call on every render.
func Filter(grouped places.Grouped, selected string) places.Grouped {
	if selected == places.All {
		return grouped
	}
	out := make(places.Grouped, 0, 1)
	for _, g := range grouped {
		if g.Category == selected {
			out = append(out, g)
		}
	}
	return out
}
