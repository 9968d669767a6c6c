package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetailCache(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cache := NewDetailCache(time.Minute)
	cache.now = func() time.Time { return now }

	_, ok := cache.Get("Louvre", "Paris")
	assert.False(t, ok)

	cache.Set("Louvre", "Paris", "A palace of art.")
	got, ok := cache.Get("Louvre", "Paris")
	assert.True(t, ok)
	assert.Equal(t, "A palace of art.", got)

	_, ok = cache.Get("Louvre", "Lens")
	assert.False(t, ok, "location is part of the key")

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("Louvre", "Paris")
	assert.False(t, ok)

	cache.Set("Orsay", "Paris", "Impressionists.")
	assert.Equal(t, 1, cache.Len(), "expired entries are swept on write")
}

func TestDetailCache_Disabled(t *testing.T) {
	cache := NewDetailCache(0)
	cache.Set("Louvre", "Paris", "A palace of art.")

	_, ok := cache.Get("Louvre", "Paris")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}
