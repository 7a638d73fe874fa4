package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"

	"github.com/analogio/analog-cli/internal/testutil"
	"github.com/analogio/analog-cli/internal/widget"
)

func TestScheduleRefresh(t *testing.T) {
	c := cron.New()
	var sent []tea.Msg

	id, err := ScheduleRefresh(c, "*/30 * * * *", func(msg tea.Msg) { sent = append(sent, msg) })
	testutil.AssertNil(t, err)

	c.Entry(id).Job.Run()
	testutil.AssertEqual(t, len(sent), 1)
	testutil.AssertEqual(t, sent[0], tea.Msg(TriggerMsg{Reason: widget.SystemUpdate}))
}

func TestScheduleRefresh_BadSpec(t *testing.T) {
	_, err := ScheduleRefresh(cron.New(), "every now and then", func(tea.Msg) {})
	testutil.AssertError(t, err)
}

func TestTrigger(t *testing.T) {
	msg := trigger(widget.UserTap)()
	testutil.AssertEqual(t, msg, tea.Msg(TriggerMsg{Reason: widget.UserTap}))
}
