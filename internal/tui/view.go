package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/analogio/analog-cli/internal/schedule"
	"github.com/analogio/analog-cli/internal/widget"
)

const tileWidth = 20

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := renderHeader()
	tiles := m.renderTiles()
	statusBar := m.renderStatusBar()
	helpView := m.help.View(m.keys)

	panelHeight := m.height - lipgloss.Height(header) - lipgloss.Height(tiles) -
		lipgloss.Height(statusBar) - lipgloss.Height(helpView) - 2
	if panelHeight < 3 {
		panelHeight = 3
	}

	border := stylePanelNormal
	if m.focus == focusSchedule {
		border = stylePanelFocused
	}
	hours := border.
		Width(max(m.width-2, 20)).
		Height(panelHeight).
		Render(m.renderSchedule(panelHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, tiles, hours, statusBar, helpView)
}

func renderHeader() string {
	return styleLogo.Render(" ☕ café Analog") + styleMuted.Render("  · open/closed")
}

// renderTiles draws one tile per surface in board order.
func (m Model) renderTiles() string {
	ids := m.board.Surfaces()
	if len(ids) == 0 {
		return stylePanelNormal.Width(max(m.width-2, 20)).
			Render(styleMuted.Render(" No widgets. Press + to add one."))
	}

	tiles := make([]string, 0, len(ids))
	for i, id := range ids {
		tiles = append(tiles, m.renderTile(i, id))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (m Model) renderTile(i int, id widget.SurfaceID) string {
	state, ok := m.board.State(id)
	if !ok {
		state = widget.Render(widget.Refreshing)
	}

	label := lipgloss.NewStyle().Foreground(state.Color).Bold(true).Render(state.Label)
	if state.State == widget.Refreshing {
		label = m.spinner.View() + " " + label
	}

	hint := " "
	if state.Tappable() {
		hint = styleMuted.Render("tap to refresh")
	}

	style := styleTile
	if m.focus == focusSurfaces && i == m.cursor {
		style = styleTileSelected
	}
	title := styleMuted.Render(fmt.Sprintf("#%d", i+1))
	return style.Render(lipgloss.JoinVertical(lipgloss.Center, title, label, hint))
}

// renderSchedule draws the opening hours pane. An empty week shows only the
// placeholder; otherwise only the list.
func (m Model) renderSchedule(height int) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("OPENING HOURS"))
	if m.schedule.Refreshing() {
		b.WriteString("  " + m.spinner.View() + styleLoading.Render(" Refreshing…"))
	}
	b.WriteString("\n")

	vis := m.schedule.Visibility()
	if vis.Placeholder {
		b.WriteString(styleMuted.Render(" Closed all week"))
		return b.String()
	}

	rows := m.schedule.Rows()
	start, end := scrollWindow(m.scroll, len(rows), height-1)
	today := int(m.now().In(m.tz).Weekday())
	for _, row := range rows[start:end] {
		b.WriteString(renderRow(row, row.DayIndex == today))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderRow(row schedule.Row, today bool) string {
	day := styleDay.Render(fmt.Sprintf(" %-10s", row.Label))
	if today {
		day = " " + styleToday.Render(fmt.Sprintf("%-10s", row.Label))
	}
	return day + " " + row.Hours()
}

// renderStatusBar shows when the hours were last refreshed.
func (m Model) renderStatusBar() string {
	updated := "hours not refreshed yet"
	if at := m.schedule.UpdatedAt(); !at.IsZero() {
		updated = "hours updated " + at.In(m.tz).Format("15:04")
	}
	text := fmt.Sprintf(" %d widget(s) · %s", m.board.Len(), updated)
	return styleStatusBar.Width(m.width).Render(text)
}

// scrollWindow returns the visible slice bounds for a list scrolled to
// offset, keeping the window full when possible.
func scrollWindow(offset, total, visible int) (int, int) {
	if visible < 1 {
		visible = 1
	}
	if total <= visible {
		return 0, total
	}
	start := min(max(offset, 0), total-visible)
	return start, start + visible
}
