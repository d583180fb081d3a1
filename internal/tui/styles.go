package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/newsai/internal/theme"
)

type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	dim       lipgloss.Color
	accent    lipgloss.Color
	border    lipgloss.Color
	surface   lipgloss.Color
	chipBg    lipgloss.Color
	statusBg  lipgloss.Color
	statusFg  lipgloss.Color
	green     lipgloss.Color
	errorFg   lipgloss.Color
}

var (
	darkPalette = palette{
		primary:   "#7571F9",
		secondary: "#ABABAB",
		dim:       "#626262",
		accent:    "#F25D94",
		border:    "#383838",
		surface:   "#1A1A2E",
		chipBg:    "#2A2A3E",
		statusBg:  "#16213E",
		statusFg:  "#ABABAB",
		green:     "#25D366",
		errorFg:   "#FF6B6B",
	}

	lightPalette = palette{
		primary:   "#5A56E0",
		secondary: "#3D3D3D",
		dim:       "#9B9B9B",
		accent:    "#D6336C",
		border:    "#DBDBDB",
		surface:   "#F5F5F5",
		chipBg:    "#EEEEEE",
		statusBg:  "#E8E8E8",
		statusFg:  "#3D3D3D",
		green:     "#04B575",
		errorFg:   "#C92A2A",
	}
)

// styles is rebuilt whenever the theme changes.
type styles struct {
	mode theme.Mode
	p    palette

	header      lipgloss.Style
	headerTag   lipgloss.Style
	themeToggle lipgloss.Style
	heading     lipgloss.Style
	subheading  lipgloss.Style

	searchPrompt lipgloss.Style
	searchIdle   lipgloss.Style

	chipActive   lipgloss.Style
	chipInactive lipgloss.Style
	chipSep      lipgloss.Style
	chipBar      lipgloss.Style

	card         lipgloss.Style
	cardSelected lipgloss.Style
	cardTitle    lipgloss.Style
	cardBody     lipgloss.Style
	cardMeta     lipgloss.Style
	badge        lipgloss.Style

	footer    lipgloss.Style
	loadMore  lipgloss.Style
	errorText lipgloss.Style
	spinner   lipgloss.Style

	overlay       lipgloss.Style
	detailTitle   lipgloss.Style
	detailSection lipgloss.Style
	detailLabel   lipgloss.Style
	detailValue   lipgloss.Style
	detailLink    lipgloss.Style
	category      lipgloss.Style

	statusBar lipgloss.Style
	helpCard  lipgloss.Style
	helpDim   lipgloss.Style
}

func newStyles(m theme.Mode) styles {
	p := darkPalette
	if m == theme.Light {
		p = lightPalette
	}

	return styles{
		mode: m,
		p:    p,

		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			PaddingLeft(1),
		headerTag: lipgloss.NewStyle().
			Foreground(p.dim),
		themeToggle: lipgloss.NewStyle().
			Foreground(p.secondary).
			Background(p.chipBg).
			Padding(0, 1),
		heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.secondary).
			PaddingLeft(1),
		subheading: lipgloss.NewStyle().
			Foreground(p.dim).
			PaddingLeft(1),

		searchPrompt: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		searchIdle: lipgloss.NewStyle().
			Foreground(p.dim).
			PaddingLeft(1),

		chipActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(p.primary).
			Padding(0, 1).
			Bold(true),
		chipInactive: lipgloss.NewStyle().
			Foreground(p.secondary).
			Background(p.chipBg).
			Padding(0, 1),
		chipSep: lipgloss.NewStyle().
			Foreground(p.dim),
		chipBar: lipgloss.NewStyle().
			Background(p.surface).
			PaddingLeft(1),

		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		cardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),
		cardTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		cardBody: lipgloss.NewStyle().
			Foreground(p.secondary),
		cardMeta: lipgloss.NewStyle().
			Foreground(p.dim),
		badge: lipgloss.NewStyle().
			Foreground(p.green),

		footer: lipgloss.NewStyle().
			Foreground(p.dim).
			PaddingLeft(1),
		loadMore: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true).
			PaddingLeft(1),
		errorText: lipgloss.NewStyle().
			Foreground(p.errorFg).
			Bold(true),
		spinner: lipgloss.NewStyle().
			Foreground(p.accent),

		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(0, 2),
		detailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		detailSection: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent).
			MarginTop(1),
		detailLabel: lipgloss.NewStyle().
			Foreground(p.dim).
			Width(14),
		detailValue: lipgloss.NewStyle().
			Foreground(p.secondary),
		detailLink: lipgloss.NewStyle().
			Foreground(p.dim).
			Italic(true),
		category: lipgloss.NewStyle().
			Foreground(p.primary).
			Background(p.chipBg).
			Padding(0, 1),

		statusBar: lipgloss.NewStyle().
			Background(p.statusBg).
			Foreground(p.statusFg).
			PaddingLeft(1).
			PaddingRight(1),
		helpCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 3),
		helpDim: lipgloss.NewStyle().
			Foreground(p.dim),
	}
}

// markdownStyle names the glamour standard style matching the theme.
func (s styles) markdownStyle() string {
	return s.mode.String()
}
