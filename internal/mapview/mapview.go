// Package mapview builds map embed URLs and keeps a single embed alive across
// target changes so a running zoom transition is never interrupted.
package mapview

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	embedBase = "https://maps.google.com/maps"

	WorldLocation = "world"
	WorldZoom     = 2
	SearchZoom    = 14
	PlaceZoom     = 15
)

// Target is what the map is pointed at.
type Target struct {
	Location string
	Zoom     int
}

func World() Target {
	return Target{Location: WorldLocation, Zoom: WorldZoom}
}

// componentEscaper turns query escaping into encodeURIComponent escaping:
// spaces become %20 and the marks ! ' ( ) * stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EmbedURL returns the embed source for location at zoom.
func EmbedURL(location string, zoom int) string {
	q := componentEscaper.Replace(url.QueryEscape(location))
	return fmt.Sprintf("%s?q=%s&t=&z=%d&ie=UTF8&iwloc=&output=embed", embedBase, q, zoom)
}

func (t Target) URL() string {
	return EmbedURL(t.Location, t.Zoom)
}

// PlaceURL is the close-up map shown inside an expanded place card.
func PlaceURL(name, address string) string {
	return EmbedURL(name+", "+address, PlaceZoom)
}

// Frame is one rendering of the Display.
type Frame struct {
	EmbedID string
	Source  string
	Target  Target
	Zooming bool
}

// Display owns one embed. Update swaps only the source; EmbedID never changes.
type Display struct {
	mu      sync.Mutex
	id      string
	target  Target
	zooming bool
	swaps   int
}

func NewDisplay(initial Target) *Display {
	return &Display{
		id:     uuid.New().String(),
		target: initial,
	}
}

// Update points the embed at target and sets the zoom treatment flag.
// It reports whether the source changed.
func (d *Display) Update(target Target, zooming bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.zooming = zooming
	if target == d.target {
		return false
	}
	d.target = target
	d.swaps++
	return true
}

func (d *Display) Frame() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Frame{
		EmbedID: d.id,
		Source:  d.target.URL(),
		Target:  d.target,
		Zooming: d.zooming,
	}
}

// Swaps counts source changes since creation.
func (d *Display) Swaps() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.swaps
}
