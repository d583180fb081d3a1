package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	loaded    int
	visible   int
	filtering bool
	category  string
	searching bool
	errText   string
}

func renderStatusBar(st styles, info statusInfo, width int) string {
	left := fmt.Sprintf("%d articles", info.loaded)
	if info.filtering {
		left = fmt.Sprintf("%d of %d articles", info.visible, info.loaded)
	}
	if info.category != "All" {
		left += " · " + info.category
	}

	right := "/ search  tab category  t theme  ? help  q quit"
	if info.searching {
		right = "esc clear  enter done"
	}

	if info.errText != "" {
		left += "  " + st.errorText.Render(info.errText)
	}

	return statusLine(st, left, right, width)
}

func renderBottomBar(st styles, hints string, width int) string {
	return statusLine(st, "", hints, width)
}

func statusLine(st styles, left, right string, width int) string {
	// statusBar pads one column each side
	inner := width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return st.statusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
