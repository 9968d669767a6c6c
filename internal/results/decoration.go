package results

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf16"
)

// PlaceholderImageURL gives each place name a stable placeholder image.
func PlaceholderImageURL(name string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/192/288", NameHash(name))
}

// NameHash is the absolute value of a 31-multiplier rolling hash over the
// UTF-16 code units of s, truncated to 32 bits at every step.
func NameHash(s string) int64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(unit)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// Stars renders five stars, filled up to the rating rounded half up.
func Stars(rating float64) string {
	filled := int(math.Floor(rating + 0.5))
	var sb strings.Builder
	for i := 0; i < 5; i++ {
		if i < filled {
			sb.WriteString("★")
		} else {
			sb.WriteString("☆")
		}
	}
	return sb.String()
}

func FormatRating(rating float64) string {
	return fmt.Sprintf("%.1f", rating)
}

// tagStyleKeys is ordered; the first key contained in a tag wins.
var tagStyleKeys = []string{"default", "Café", "Books", "Food", "Wine", "Restaurant", "Park", "Museum", "Shop"}

// TagStyle maps a free-form category tag onto a style key.
func TagStyle(tag string) string {
	lower := strings.ToLower(tag)
	for _, key := range tagStyleKeys {
		if strings.Contains(lower, strings.ToLower(key)) {
			return key
		}
	}
	return "default"
}
