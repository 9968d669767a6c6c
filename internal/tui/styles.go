package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1F2937")).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	starStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B91C1C")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#F87171")).Padding(0, 1)
	inlineError  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#D1D5DB")).Padding(0, 1)
	cardSelected = cardStyle.BorderForeground(lipgloss.Color("#60A5FA"))

	mapStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#9CA3AF")).Padding(0, 1)
	mapZoomed   = mapStyle.Faint(true).BorderForeground(lipgloss.Color("#4B5563"))
	chipPadding = lipgloss.NewStyle().Padding(0, 1)
)

type chipColors struct {
	idle     lipgloss.Style
	selected lipgloss.Style
}

func chip(fg, bg, selBg string) chipColors {
	return chipColors{
		idle:     chipPadding.Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg)),
		selected: chipPadding.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(selBg)),
	}
}

var categoryChips = map[string]chipColors{
	"All":         chip("#1F2937", "#F3F4F6", "#374151"),
	"Restaurants": chip("#1E40AF", "#DBEAFE", "#3B82F6"),
	"Cafes":       chip("#166534", "#DCFCE7", "#22C55E"),
	"Parks":       chip("#854D0E", "#FEF9C3", "#EAB308"),
	"Museums":     chip("#6B21A8", "#F3E8FF", "#A855F7"),
	"Shops":       chip("#9A3412", "#FFEDD5", "#F97316"),
}

var defaultChip = chip("#374151", "#E5E7EB", "#374151")

func tagBadge(fg, bg string) lipgloss.Style {
	return chipPadding.Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
}

// tagBadges is keyed by results.TagStyle.
var tagBadges = map[string]lipgloss.Style{
	"default":    tagBadge("#1F2937", "#E5E7EB"),
	"Café":       tagBadge("#166534", "#BBF7D0"),
	"Books":      tagBadge("#6B21A8", "#E9D5FF"),
	"Food":       tagBadge("#1E40AF", "#BFDBFE"),
	"Wine":       tagBadge("#991B1B", "#FECACA"),
	"Restaurant": tagBadge("#1E40AF", "#BFDBFE"),
	"Park":       tagBadge("#854D0E", "#FEF08A"),
	"Museum":     tagBadge("#3730A3", "#C7D2FE"),
	"Shop":       tagBadge("#9D174D", "#FBCFE8"),
}
