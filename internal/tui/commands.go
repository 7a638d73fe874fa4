package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"

	"github.com/analogio/analog-cli/internal/widget"
)

// ScheduleRefresh registers a periodic system update on c. send is usually
// Program.Send; the message is handled on the update loop like any other.
func ScheduleRefresh(c *cron.Cron, spec string, send func(tea.Msg)) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		send(TriggerMsg{Reason: widget.SystemUpdate})
	})
}

// trigger wraps a reason in a command, for keys that refresh indirectly
func trigger(reason widget.Reason) tea.Cmd {
	return func() tea.Msg {
		return TriggerMsg{Reason: reason}
	}
}
