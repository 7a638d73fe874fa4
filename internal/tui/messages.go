package tui

import "github.com/analogio/analog-cli/internal/widget"

// TriggerMsg starts a widget refresh from outside the update loop, e.g. from
// the cron scheduler through Program.Send.
type TriggerMsg struct {
	Reason widget.Reason
}
