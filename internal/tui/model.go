// Package tui is the terminal front end: a bubbletea program rendering the
// search orchestrator's state.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"nearby/internal/mapview"
	"nearby/internal/places"
	"nearby/internal/results"
	"nearby/internal/search"
)

type stateChangedMsg struct{}

type detailDoneMsg struct {
	name string
	err  error
}

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	orch    *search.Orchestrator
	fetcher results.DetailFetcher
	logger  *zap.Logger

	input   textinput.Model
	spinner spinner.Model
	display *mapview.Display

	state   search.State
	deck    *results.Deck
	deckGen uint64
	cursor  int
	width   int
}

func New(ctx context.Context, orch *search.Orchestrator, fetcher results.DetailFetcher, logger *zap.Logger) Model {
	in := textinput.New()
	in.Placeholder = "Enter city, address, or landmark"
	in.Prompt = "⌕ "
	in.CharLimit = 200
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	state := orch.Snapshot()
	return Model{
		ctx:     ctx,
		orch:    orch,
		fetcher: fetcher,
		logger:  logger,
		input:   in,
		spinner: sp,
		display: mapview.NewDisplay(state.Map),
		state:   state,
		width:   80,
	}
}

func waitForChange(o *search.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-o.Changed():
			return stateChangedMsg{}
		case <-o.Done():
			return nil
		}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForChange(m.orch))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case stateChangedMsg:
		m.sync()
		return m, waitForChange(m.orch)

	case detailDoneMsg:
		if msg.err != nil {
			m.logger.Warn("detail fetch failed", zap.String("place", msg.name), zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// sync pulls the orchestrator's state; a new settled generation gets a
// fresh deck so card detail caches live exactly as long as their results.
func (m *Model) sync() {
	m.state = m.orch.Snapshot()
	m.display.Update(m.state.Map, m.state.Zooming())

	if m.state.Settled && m.state.Generation != m.deckGen {
		m.deck = results.NewDeck(m.state.Grouped)
		m.deckGen = m.state.Generation
		m.cursor = 0
	}
	if n := len(m.visibleCards()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) visibleCards() []*results.Card {
	if m.deck == nil {
		return nil
	}
	return m.deck.Cards(m.state.Visible())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			if err := m.orch.Search(m.input.Value()); err == nil {
				m.input.Blur()
			}
			return m, nil
		case "esc":
			if m.state.View == search.ViewResults {
				m.input.Blur()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.state.View != search.ViewResults {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.orch.Back()
		return m, m.input.Focus()
	case "/":
		return m, m.input.Focus()
	case "tab", "right", "l":
		m.shiftCategory(1)
	case "shift+tab", "left", "h":
		m.shiftCategory(-1)
	case "down", "j":
		if m.cursor < len(m.visibleCards())-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter", " ":
		return m, m.toggleSelected()
	}
	return m, nil
}

func (m *Model) shiftCategory(step int) {
	cats := places.Categories()
	idx := 0
	for i, c := range cats {
		if c == m.state.Category {
			idx = i
		}
	}
	next := cats[(idx+step+len(cats))%len(cats)]
	if err := m.orch.SelectCategory(next); err == nil {
		m.state.Category = next
		m.cursor = 0
	}
}

func (m Model) toggleSelected() tea.Cmd {
	cards := m.visibleCards()
	if m.cursor >= len(cards) {
		return nil
	}
	card := cards[m.cursor]
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		err := card.Toggle(ctx, fetcher)
		if errors.Is(err, results.ErrDetailsLoading) {
			err = nil
		}
		return detailDoneMsg{name: card.View().Place.Name, err: err}
	}
}

func (m Model) View() string {
	switch m.state.View {
	case search.ViewLoading:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderMap(),
			"",
			fmt.Sprintf("%s %s", m.spinner.View(), titleStyle.Render("Finding places near...")),
			mutedStyle.Render(m.state.Query),
		)
	case search.ViewResults:
		return m.renderResults()
	default:
		return m.renderSearch()
	}
}

func (m Model) renderMap() string {
	frame := m.display.Frame()
	style := mapStyle
	label := "map"
	if frame.Zooming {
		style = mapZoomed
		label = "map · zooming"
	}
	return style.Width(max(m.width-4, 20)).Render(fmt.Sprintf("%s  %s (z%d)\n%s",
		label, frame.Target.Location, frame.Target.Zoom, mutedStyle.Render(frame.Source)))
}

func (m Model) renderSearch() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Nearby Places"),
		"",
		m.input.View(),
	)
	if m.state.Error != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, inlineError.Render(m.state.Error))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderMap(), "", panelStyle.Render(body))
}

func (m Model) renderChips() string {
	var chips []string
	for _, c := range places.Categories() {
		colors, ok := categoryChips[c]
		if !ok {
			colors = defaultChip
		}
		if c == m.state.Category {
			chips = append(chips, colors.selected.Render(c))
		} else {
			chips = append(chips, colors.idle.Render(c))
		}
	}
	return strings.Join(chips, " ")
}

func (m Model) renderResults() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Results for %q", m.state.Query)))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderChips())
	b.WriteString("\n")

	visible := m.state.Visible()
	switch {
	case m.state.Error != "":
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.state.Error))
	case len(visible) == 0:
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("No Results Found"))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("There were no places found for the selected category."))
	default:
		idx := 0
		for _, g := range visible {
			b.WriteString(headerStyle.Render(g.Category))
			b.WriteString("\n")
			for i := range g.Places {
				card, ok := m.deck.Card(g.Category, i)
				if !ok {
					continue
				}
				b.WriteString(m.renderCard(card.View(), idx == m.cursor))
				b.WriteString("\n")
				idx++
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("tab: category · ↑/↓: move · enter: details · /: search · esc: back · q: quit"))
	return b.String()
}

func (m Model) renderCard(v results.CardView, selected bool) string {
	badge, ok := tagBadges[v.TagStyle]
	if !ok {
		badge = tagBadges["default"]
	}

	button := "View Details"
	switch {
	case v.Status == results.DetailLoading:
		button = m.spinner.View() + " Loading..."
	case v.Expanded:
		button = "Hide Details"
	}

	lines := []string{
		titleStyle.Render(v.Place.Name),
		starStyle.Render(v.Stars) + " " + v.Rating,
		v.Place.Description,
		mutedStyle.Render(v.Place.Address),
		mutedStyle.Render("image: " + v.ImageURL),
	}
	if v.Expanded {
		lines = append(lines, "", v.Details, mutedStyle.Render("map: "+v.MapURL))
	}
	if v.Error != "" && v.Status != results.DetailLoading {
		lines = append(lines, "", inlineError.Render(v.Error))
	}
	lines = append(lines, badge.Render(v.Place.CategoryTag)+"  ["+button+"]")

	style := cardStyle
	if selected {
		style = cardSelected
	}
	return style.Width(max(m.width-4, 20)).Render(strings.Join(lines, "\n"))
}

// Run starts the program and blocks until the user quits. The orchestrator
// is closed on return.
func Run(ctx context.Context, orch *search.Orchestrator, fetcher results.DetailFetcher, logger *zap.Logger) error {
	defer orch.Close()

	p := tea.NewProgram(New(ctx, orch, fetcher, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
