// Package search drives the three-phase search view: search, loading and
// results. Machine holds the transitions; Orchestrator adds the category
// fan-out and the timed choreography on top of it.
package search

import (
	"errors"
	"strings"

	"nearby/internal/mapview"
	"nearby/internal/places"
	"nearby/internal/results"
)

type ViewState int

const (
	ViewSearch ViewState = iota
	ViewLoading
	ViewResults
)

func (v ViewState) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewResults:
		return "results"
	default:
		return "search"
	}
}

const (
	MsgEmptyQuery  = "Please enter a location to search."
	MsgNoResults   = "No places found for this location. Please try another search."
	MsgFetchFailed = "Could not fetch places. Please try again later."
)

var (
	ErrEmptyQuery      = errors.New("empty search query")
	ErrUnknownCategory = errors.New("unknown category")
)

// State is a copy of the machine's observable fields.
type State struct {
	View       ViewState
	Query      string
	Grouped    places.Grouped
	Error      string
	Category   string
	Map        mapview.Target
	Generation uint64
	Settled    bool
}

// Visible is the grouped result set under the current category filter.
func (s State) Visible() places.Grouped {
	return results.Filter(s.Grouped, s.Category)
}

// Zooming reports whether the map zoom treatment is active.
func (s State) Zooming() bool {
	return s.View == ViewLoading
}

// Machine is the search view state machine. Every transition that belongs
// to a search takes that search's generation and is ignored once a newer
// search or a Back has superseded it. Machine is not safe for concurrent use.
type Machine struct {
	state   State
	order   []string
	pending map[string][]places.Place
}

func NewMachine() *Machine {
	return &Machine{
		state: State{
			View:     ViewSearch,
			Category: places.All,
			Map:      mapview.World(),
		},
		order: places.QueryCategories(),
	}
}

func (m *Machine) State() State {
	return m.state
}

// Categories returns the categories a search fans out to.
func (m *Machine) Categories() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Start begins a search for query and returns its generation. An empty query
// sets the validation message and leaves the view untouched.
func (m *Machine) Start(query string) (uint64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		m.state.Error = MsgEmptyQuery
		return 0, ErrEmptyQuery
	}

	m.state.Generation++
	m.state.View = ViewLoading
	m.state.Query = query
	m.state.Grouped = nil
	m.state.Error = ""
	m.state.Category = places.All
	m.state.Settled = false
	m.pending = make(map[string][]places.Place, len(m.order))
	return m.state.Generation, nil
}

func (m *Machine) current(gen uint64) bool {
	return gen != 0 && gen == m.state.Generation && m.state.View != ViewSearch
}

// SwapMap points the map at the searched location.
func (m *Machine) SwapMap(gen uint64) bool {
	if !m.current(gen) {
		return false
	}
	m.state.Map = mapview.Target{Location: m.state.Query, Zoom: mapview.SearchZoom}
	return true
}

// BranchSettled records one category's outcome. Failed and empty branches
// are dropped without trace.
func (m *Machine) BranchSettled(gen uint64, category string, found []places.Place, err error) bool {
	if !m.current(gen) || m.state.Settled {
		return false
	}
	if err == nil && len(found) > 0 {
		m.pending[category] = found
	}
	return true
}

// Settle closes the fan-out. failure is an unexpected fault of the fan-out
// as a whole, not of a single branch.
func (m *Machine) Settle(gen uint64, failure error) bool {
	if !m.current(gen) || m.state.Settled {
		return false
	}
	m.state.Settled = true

	if failure != nil {
		m.state.Grouped = nil
		m.state.Error = MsgFetchFailed
		return true
	}

	m.state.Grouped = places.NewGrouped(m.order, m.pending)
	if len(m.state.Grouped) == 0 {
		m.state.Error = MsgNoResults
	} else {
		m.state.Error = ""
	}
	return true
}

// Reveal moves a settled search to the results view.
func (m *Machine) Reveal(gen uint64) bool {
	if !m.current(gen) || !m.state.Settled || m.state.View != ViewLoading {
		return false
	}
	m.state.View = ViewResults
	return true
}

// Back returns to the search view with the world map and supersedes any
// search in flight.
func (m *Machine) Back() {
	m.state.Generation++
	m.state.View = ViewSearch
	m.state.Error = ""
	m.state.Map = mapview.World()
	m.pending = nil
}

func (m *Machine) SelectCategory(category string) error {
	if !places.IsCategory(category) {
		return ErrUnknownCategory
	}
	m.state.Category = category
	return nil
}
