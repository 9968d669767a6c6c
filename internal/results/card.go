package results

import (
	"context"
	"errors"
	"sync"

	"nearby/internal/mapview"
	"nearby/internal/places"
)

const DetailErrorMessage = "Failed to load details. Please try again."

var ErrDetailsLoading = errors.New("details are already loading")

type DetailFetcher interface {
	GetPlaceDetails(ctx context.Context, placeName, location string) (string, error)
}

type DetailStatus int

const (
	DetailUnfetched DetailStatus = iota
	DetailLoading
	DetailFetched
	DetailFailed
)

func (s DetailStatus) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailFetched:
		return "fetched"
	case DetailFailed:
		return "failed"
	default:
		return "unfetched"
	}
}

// Card is one place with its lazily fetched details. A successful fetch is
// kept for the card's lifetime; a failure is shown in place of details and
// retried only on the next explicit expand.
type Card struct {
	mu       sync.Mutex
	place    places.Place
	status   DetailStatus
	details  string
	errMsg   string
	expanded bool
	fetches  int
}

func NewCard(place places.Place) *Card {
	return &Card{place: place}
}

// Toggle collapses an expanded card, re-expands a cached one, or fetches
// details for the first time. It blocks for the duration of a fetch.
func (c *Card) Toggle(ctx context.Context, fetcher DetailFetcher) error {
	c.mu.Lock()
	switch {
	case c.status == DetailLoading:
		c.mu.Unlock()
		return ErrDetailsLoading
	case c.expanded:
		c.expanded = false
		c.mu.Unlock()
		return nil
	case c.status == DetailFetched:
		c.expanded = true
		c.mu.Unlock()
		return nil
	}
	c.status = DetailLoading
	c.errMsg = ""
	c.fetches++
	name, address := c.place.Name, c.place.Address
	c.mu.Unlock()

	details, err := fetcher.GetPlaceDetails(ctx, name, address)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = DetailFailed
		c.errMsg = DetailErrorMessage
		return err
	}
	c.status = DetailFetched
	c.details = details
	c.expanded = true
	return nil
}

// CardView is an immutable rendering of a Card.
type CardView struct {
	Place    places.Place
	Status   DetailStatus
	Details  string
	Error    string
	Expanded bool
	ImageURL string
	MapURL   string
	Stars    string
	Rating   string
	TagStyle string
}

func (c *Card) View() CardView {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := CardView{
		Place:    c.place,
		Status:   c.status,
		Expanded: c.expanded && c.status == DetailFetched,
		ImageURL: PlaceholderImageURL(c.place.Name),
		Stars:    Stars(c.place.Rating),
		Rating:   FormatRating(c.place.Rating),
		TagStyle: TagStyle(c.place.CategoryTag),
	}
	if v.Expanded {
		v.Details = c.details
		v.MapURL = mapview.PlaceURL(c.place.Name, c.place.Address)
	}
	if c.status == DetailFailed {
		v.Error = c.errMsg
	}
	return v
}

// Fetches is the number of detail requests this card has issued.
func (c *Card) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

// Deck holds the cards of one result set, addressed by category and index.
type Deck struct {
	cards map[string][]*Card
}

func NewDeck(grouped places.Grouped) *Deck {
	d := &Deck{cards: make(map[string][]*Card, len(grouped))}
	for _, g := range grouped {
		cards := make([]*Card, len(g.Places))
		for i, p := range g.Places {
			cards[i] = NewCard(p)
		}
		d.cards[g.Category] = cards
	}
	return d
}

func (d *Deck) Card(category string, index int) (*Card, bool) {
	cards := d.cards[category]
	if index < 0 || index >= len(cards) {
		return nil, false
	}
	return cards[index], true
}

// Cards returns the cards of the visible groups in display order.
func (d *Deck) Cards(visible places.Grouped) []*Card {
	var out []*Card
	for _, g := range visible {
		out = append(out, d.cards[g.Category]...)
	}
	return out
}
