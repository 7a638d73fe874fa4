package tui

import (
	"slices"
	"sync"

	"github.com/analogio/analog-cli/internal/widget"
)

// Board holds the widget surfaces shown in the TUI. It is both the registry
// the refresh controller enumerates and the host it pushes to.
type Board struct {
	mu     sync.Mutex
	next   widget.SurfaceID
	ids    []widget.SurfaceID
	states map[widget.SurfaceID]widget.RenderedState
}

// NewBoard creates a board with n surfaces
func NewBoard(n int) *Board {
	b := &Board{states: make(map[widget.SurfaceID]widget.RenderedState)}
	for range n {
		b.Add()
	}
	return b
}

// Add creates a surface and returns its id. Ids are never reused.
func (b *Board) Add() widget.SurfaceID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	b.ids = append(b.ids, b.next)
	return b.next
}

// Remove deletes a surface. It reports false for an unknown id.
func (b *Board) Remove(id widget.SurfaceID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.Index(b.ids, id)
	if i < 0 {
		return false
	}
	b.ids = slices.Delete(b.ids, i, i+1)
	delete(b.states, id)
	return true
}

// Surfaces returns the current ids in creation order
func (b *Board) Surfaces() []widget.SurfaceID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.ids)
}

// Push stores the state shown on a surface. Unknown ids are ignored.
func (b *Board) Push(id widget.SurfaceID, state widget.RenderedState) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !slices.Contains(b.ids, id) {
		return
	}
	b.states[id] = state
}

// State returns what a surface shows. ok is false until the first push.
func (b *Board) State(id widget.SurfaceID) (state widget.RenderedState, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok = b.states[id]
	return state, ok
}

func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ids)
}
