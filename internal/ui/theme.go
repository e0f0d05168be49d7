package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Styles derives the lipgloss styles from it.
type Theme struct {
	Name string

	Background  string
	Surface     string // header, footer
	SurfaceAlt  string // tab bar
	SelectionBg string
	SelectionFg string
	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// BadgeColors is keyed by badge kind.
	BadgeColors map[string]string
}

// Badge kinds derived from the service's trend_type labels.
const (
	badgeExploding = "exploding"
	badgeFast      = "fast"
	badgeSteady    = "steady"
	badgeShort     = "short"
	badgeTrending  = "trending"
)

// badgeKind maps a free-form trend label to a badge kind.
func badgeKind(label string) string {
	switch {
	case strings.Contains(label, "Exploding"), strings.Contains(label, "Fire"):
		return badgeExploding
	case strings.Contains(label, "Fast"):
		return badgeFast
	case strings.Contains(label, "Steady"):
		return badgeSteady
	case strings.Contains(label, "Short"):
		return badgeShort
	default:
		return badgeTrending
	}
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Card     lipgloss.Style

	theme Theme
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionFg).
			Background(lipgloss.Color(t.SelectionBg)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		theme: t,
	}
}

// BadgeStyle returns the badge style for a trend label.
func (s Styles) BadgeStyle(label string) lipgloss.Style {
	color := s.theme.BadgeColors[badgeKind(label)]
	if color == "" {
		color = s.theme.Muted
	}
	return fg(s.theme.Background).Background(lipgloss.Color(color)).Padding(0, 1)
}

// WithBackground returns a copy whose text styles render on bgColor. The
// selection and card styles keep their own backgrounds.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	return themeOrder
}

// https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name:        "Nightfox",
		Background:  "#131a24",
		Surface:     "#192330",
		SurfaceAlt:  "#212e3f",
		SelectionBg: "#2b3b51",
		SelectionFg: "#cdcecf",
		Border:      "#39506d",
		BorderFocus: "#719cd6",
		Text:        "#cdcecf",
		Muted:       "#738091",
		Faint:       "#71839b",
		Accent:      "#719cd6",
		Success:     "#81b29a",
		Warning:     "#dbc074",
		Danger:      "#c94f6d",
		Info:        "#63cdcf",
		BadgeColors: map[string]string{
			badgeExploding: "#c94f6d",
			badgeFast:      "#f4a261",
			badgeSteady:    "#81b29a",
			badgeShort:     "#9d79d6",
			badgeTrending:  "#719cd6",
		},
	}
}

// https://github.com/rebelot/kanagawa.nvim
func kanagawaTheme() Theme {
	return Theme{
		Name:        "Kanagawa",
		Background:  "#16161D",
		Surface:     "#1F1F28",
		SurfaceAlt:  "#2A2A37",
		SelectionBg: "#2D4F67",
		SelectionFg: "#DCD7BA",
		Border:      "#54546D",
		BorderFocus: "#7E9CD8",
		Text:        "#DCD7BA",
		Muted:       "#C8C093",
		Faint:       "#727169",
		Accent:      "#7E9CD8",
		Success:     "#98BB6C",
		Warning:     "#E6C384",
		Danger:      "#E46876",
		Info:        "#7FB4CA",
		BadgeColors: map[string]string{
			badgeExploding: "#E46876",
			badgeFast:      "#FFA066",
			badgeSteady:    "#98BB6C",
			badgeShort:     "#957FB8",
			badgeTrending:  "#7E9CD8",
		},
	}
}

// Tailwind slate/sky: https://tailwindcss.com/docs/colors
func slateTheme() Theme {
	return Theme{
		Name:        "Slate",
		Background:  "#020617",
		Surface:     "#0f172a",
		SurfaceAlt:  "#1e293b",
		SelectionBg: "#0284c7",
		SelectionFg: "#f8fafc",
		Border:      "#334155",
		BorderFocus: "#38bdf8",
		Text:        "#f1f5f9",
		Muted:       "#94a3b8",
		Faint:       "#64748b",
		Accent:      "#38bdf8",
		Success:     "#22c55e",
		Warning:     "#f59e0b",
		Danger:      "#ef4444",
		Info:        "#06b6d4",
		BadgeColors: map[string]string{
			badgeExploding: "#dc2626",
			badgeFast:      "#ea580c",
			badgeSteady:    "#16a34a",
			badgeShort:     "#7c3aed",
			badgeTrending:  "#0284c7",
		},
	}
}
