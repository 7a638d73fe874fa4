package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// ClearScreen clears the terminal screen and moves cursor to top-left
func ClearScreen(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[2J\033[H")
}

// HideCursor hides the terminal cursor
func HideCursor(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor
func ShowCursor(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25h")
}

// SignalContext returns a context that is cancelled on interrupt or SIGTERM
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
